package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type MediaFileModel struct {
	ID           string         `gorm:"type:uuid;primary_key" json:"id"`
	Filename     string         `gorm:"type:varchar(255);not null" json:"filename"`
	OriginalName string         `gorm:"type:varchar(255)" json:"original_name"`
	Bucket       string         `gorm:"type:varchar(64);not null;index" json:"bucket"`
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

func (MediaFileModel) TableName() string {
	return "media_files"
}

func (m *MediaFileModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
