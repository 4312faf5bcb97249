package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SettingModel struct {
	ID        string         `gorm:"type:uuid;primary_key"`
	Key       string         `gorm:"type:varchar(100);uniqueIndex;not null"`
	Value     datatypes.JSON `gorm:"type:jsonb"`
	UpdatedBy *string        `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SettingModel) TableName() string {
	return "site_settings"
}

func (s *SettingModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
