package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductModel struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	NameAr          string         `gorm:"type:varchar(255)" json:"name_ar"`
	Description     string         `gorm:"type:text" json:"description"`
	DescriptionAr   string         `gorm:"type:text" json:"description_ar"`
	Category        string         `gorm:"type:varchar(100);index" json:"category"`
	Label           string         `gorm:"type:varchar(50)" json:"label"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
	WebsiteURL      string         `gorm:"type:varchar(500)" json:"website_url"`
	LogoURL         string         `gorm:"type:varchar(500)" json:"logo_url"`
	Status          string         `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason"`
	SubmittedBy     *string        `gorm:"type:uuid" json:"submitted_by"`
	Views           int            `gorm:"default:0" json:"views"`
	IsFeatured      bool           `gorm:"default:false" json:"is_featured"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (ProductModel) TableName() string {
	return "products"
}

func (p *ProductModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
