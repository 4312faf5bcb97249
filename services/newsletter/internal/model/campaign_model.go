package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CampaignModel struct {
	ID              string     `gorm:"type:uuid;primary_key" json:"id"`
	Subject         string     `gorm:"type:varchar(255);not null" json:"subject"`
	ContentHTML     string     `gorm:"column:content_html;type:text" json:"content_html"`
	Status          string     `gorm:"type:varchar(20);default:'draft';index" json:"status"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	SentAt          *time.Time `json:"sent_at"`
	RecipientsCount int        `gorm:"default:0" json:"recipients_count"`
	FailedCount     int        `gorm:"default:0" json:"failed_count"`
	CreatedBy       *string    `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (CampaignModel) TableName() string {
	return "email_campaigns"
}

func (c *CampaignModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
