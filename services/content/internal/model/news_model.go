package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsModel struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	TitleAr     string     `gorm:"type:varchar(500)" json:"title_ar"`
	TitleEn     string     `gorm:"type:varchar(500)" json:"title_en"`
	SummaryAr   string     `gorm:"type:text" json:"summary_ar"`
	SummaryEn   string     `gorm:"type:text" json:"summary_en"`
	ContentAr   string     `gorm:"type:text" json:"content_ar"`
	ContentEn   string     `gorm:"type:text" json:"content_en"`
	ImageURL    string     `gorm:"type:varchar(500)" json:"image_url"`
	Label       string     `gorm:"type:varchar(50)" json:"label"`
	IsPublished bool       `gorm:"default:false" json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	IsFeatured  bool       `gorm:"default:false" json:"is_featured"`
	Views       int        `gorm:"default:0" json:"views"`
	AuthorID    *string    `gorm:"type:uuid" json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (NewsModel) TableName() string {
	return "news"
}

func (n *NewsModel) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return nil
}
