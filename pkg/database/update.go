package database

import (
	"fmt"

	"gorm.io/gorm"
)

// UpdateFields writes only the named columns of the row with the given id.
// values holds every column the caller may write; naming any other column is
// an error. When no row matches, including rows filtered out by conditions
// already on db, the result is gorm.ErrRecordNotFound.
func UpdateFields(db *gorm.DB, model interface{}, id string, values map[string]interface{}, fields []string) error {
	if len(fields) == 0 {
		return nil
	}

	updates := make(map[string]interface{}, len(fields))
	for _, field := range fields {
		value, ok := values[field]
		if !ok {
			return fmt.Errorf("column %q is not updatable", field)
		}
		updates[field] = value
	}

	result := db.Model(model).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
