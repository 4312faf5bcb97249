package persistent

import (
	"time"

	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository interface {
	List() ([]*entity.Setting, error)
	GetByKey(key string) (*entity.Setting, error)
	// Upsert writes the value for key in one statement and returns the row.
	Upsert(key string, value []byte, updatedBy string) (*entity.Setting, error)
}

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) List() ([]*entity.Setting, error) {
	var settingModels []model.SettingModel
	if err := r.db.Order("key ASC").Find(&settingModels).Error; err != nil {
		return nil, err
	}
	return ToSettingEntities(settingModels), nil
}

func (r *settingsRepository) GetByKey(key string) (*entity.Setting, error) {
	var settingModel model.SettingModel
	if err := r.db.Where("key = ?", key).First(&settingModel).Error; err != nil {
		return nil, err
	}
	return ToSettingEntity(&settingModel), nil
}

func (r *settingsRepository) Upsert(key string, value []byte, updatedBy string) (*entity.Setting, error) {
	settingModel := &model.SettingModel{
		Key:       key,
		Value:     datatypes.JSON(value),
		UpdatedBy: &updatedBy,
		UpdatedAt: time.Now(),
	}
	err := r.db.Clauses(
		clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by", "updated_at"}),
		},
		clause.Returning{},
	).Create(settingModel).Error
	if err != nil {
		return nil, err
	}
	return ToSettingEntity(settingModel), nil
}
