package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID           string    `gorm:"type:uuid;primary_key"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     string    `gorm:"type:varchar(255)"`
	AvatarURL    string    `gorm:"type:varchar(500)"`
	Bio          string    `gorm:"type:text"`
	Role         string    `gorm:"type:varchar(20);default:'user'"`
	Locale       string    `gorm:"type:varchar(5);default:'ar'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
