package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type MediaFile struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	Filename     string         `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string         `gorm:"type:varchar(255)" json:"original_name"`
	Bucket       string         `gorm:"type:varchar(64);not null" json:"bucket"`
	URL          string         `gorm:"type:varchar(1000);not null" json:"url"`
	Size         int64          `json:"size"`
	MimeType     string         `gorm:"type:varchar(100)" json:"mime_type"`
	Width        *int           `json:"width"`
	Height       *int           `json:"height"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	UploadedBy   *string        `gorm:"type:uuid" json:"uploaded_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (m *MediaFile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

type SiteSetting struct {
	ID        string         `gorm:"type:uuid;primary_key" json:"id"`
	Key       string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"key"`
	Value     datatypes.JSON `gorm:"type:jsonb" json:"value"`
	UpdatedBy *string        `gorm:"type:uuid" json:"updated_by"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (s *SiteSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
