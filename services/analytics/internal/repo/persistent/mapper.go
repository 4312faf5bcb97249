package persistent

import (
	"encoding/json"

	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/model"
)

func ToActivityEntity(m *model.ActivityLogRow) *entity.ActivityLog {
	if m == nil {
		return nil
	}
	details := map[string]interface{}(m.Details)
	if details == nil {
		details = map[string]interface{}{}
	}
	return &entity.ActivityLog{
		ID:           m.ID,
		AdminID:      m.AdminID,
		AdminEmail:   m.AdminEmail,
		Action:       m.Action,
		ResourceType: m.ResourceType,
		ResourceID:   m.ResourceID,
		Details:      details,
		CreatedAt:    m.CreatedAt,
	}
}

func ToActivityEntities(rows []model.ActivityLogRow) []*entity.ActivityLog {
	results := make([]*entity.ActivityLog, len(rows))
	for i := range rows {
		results[i] = ToActivityEntity(&rows[i])
	}
	return results
}

func ToSettingEntity(m *model.SettingModel) *entity.Setting {
	if m == nil {
		return nil
	}
	return &entity.Setting{
		Key:       m.Key,
		Value:     json.RawMessage(m.Value),
		UpdatedBy: m.UpdatedBy,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToSettingEntities(models []model.SettingModel) []*entity.Setting {
	results := make([]*entity.Setting, len(models))
	for i := range models {
		results[i] = ToSettingEntity(&models[i])
	}
	return results
}
