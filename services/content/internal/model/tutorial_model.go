package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TutorialModel struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	TitleAr    string         `gorm:"type:varchar(500)" json:"title_ar"`
	TitleEn    string         `gorm:"type:varchar(500)" json:"title_en"`
	ContentAr  string         `gorm:"type:text" json:"content_ar"`
	ContentEn  string         `gorm:"type:text" json:"content_en"`
	Category   string         `gorm:"type:varchar(100);index" json:"category"`
	Difficulty string         `gorm:"type:varchar(20);default:'beginner'" json:"difficulty"`
	Tags       pq.StringArray `gorm:"type:text[]" json:"tags"`
	ImageURL   string         `gorm:"type:varchar(500)" json:"image_url"`
	Views      int            `gorm:"default:0" json:"views"`
	AuthorID   *string        `gorm:"type:uuid" json:"author_id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (TutorialModel) TableName() string {
	return "tutorials"
}

func (t *TutorialModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
