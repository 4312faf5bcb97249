package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NewsletterSubscriber struct {
	ID             string     `gorm:"type:uuid;primary_key" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Locale         string     `gorm:"type:varchar(5);default:'ar'" json:"locale"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (s *NewsletterSubscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSending   CampaignStatus = "sending"
	CampaignSent      CampaignStatus = "sent"
	CampaignCancelled CampaignStatus = "cancelled"
)

type EmailCampaign struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	Subject         string         `gorm:"type:varchar(255);not null" json:"subject"`
	ContentHTML     string         `gorm:"column:content_html;type:text" json:"content_html"`
	Status          CampaignStatus `gorm:"type:varchar(20);default:'draft'" json:"status"`
	ScheduledAt     *time.Time     `json:"scheduled_at"`
	SentAt          *time.Time     `json:"sent_at"`
	RecipientsCount int            `gorm:"default:0" json:"recipients_count"`
	FailedCount     int            `gorm:"default:0" json:"failed_count"`
	CreatedBy       *string        `gorm:"type:uuid" json:"created_by"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (c *EmailCampaign) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
