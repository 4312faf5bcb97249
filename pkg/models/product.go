package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ProductStatus string

const (
	StatusPending  ProductStatus = "pending"
	StatusApproved ProductStatus = "approved"
	StatusRejected ProductStatus = "rejected"
)

type Product struct {
	ID              string         `gorm:"type:uuid;primary_key" json:"id"`
	Name            string         `gorm:"type:varchar(255);not null" json:"name"`
	NameAr          string         `gorm:"type:varchar(255)" json:"name_ar"`
	Description     string         `gorm:"type:text" json:"description"`
	DescriptionAr   string         `gorm:"type:text" json:"description_ar"`
	Category        string         `gorm:"type:varchar(100)" json:"category"`
	Label           string         `gorm:"type:varchar(50)" json:"label"`
	Tags            pq.StringArray `gorm:"type:text[]" json:"tags"`
	WebsiteURL      string         `gorm:"type:varchar(500)" json:"website_url"`
	LogoURL         string         `gorm:"type:varchar(500)" json:"logo_url"`
	Status          ProductStatus  `gorm:"type:varchar(20);default:'pending'" json:"status"`
	RejectionReason string         `gorm:"type:text" json:"rejection_reason"`
	SubmittedBy     *string        `gorm:"type:uuid" json:"submitted_by"`
	Views           int            `gorm:"default:0" json:"views"`
	IsFeatured      bool           `gorm:"default:false" json:"is_featured"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// Review is written by a signed-in user; one per product and user.
type Review struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

// ProductReview is an anonymous review left from the public product page.
type ProductReview struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     string    `gorm:"type:uuid;not null;index" json:"product_id"`
	ReviewerName  string    `gorm:"type:varchar(100);not null" json:"reviewer_name"`
	ReviewerEmail string    `gorm:"type:varchar(255)" json:"-"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (r *ProductReview) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
