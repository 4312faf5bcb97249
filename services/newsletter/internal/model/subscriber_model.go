package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriberModel struct {
	ID             string     `gorm:"type:uuid;primary_key" json:"id"`
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	Locale         string     `gorm:"type:varchar(5);default:'ar'" json:"locale"`
	IsActive       bool       `gorm:"default:true" json:"is_active"`
	SubscribedAt   time.Time  `json:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (SubscriberModel) TableName() string {
	return "newsletter_subscribers"
}

func (s *SubscriberModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
