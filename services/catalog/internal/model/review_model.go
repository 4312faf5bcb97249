package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	ProductID string    `gorm:"type:uuid;not null;index" json:"product_id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// filled by joins, not a column
	AuthorName string `gorm:"->;-:migration" json:"author_name"`
}

func (ReviewModel) TableName() string {
	return "reviews"
}

func (r *ReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}

type ProductReviewModel struct {
	ID            string    `gorm:"type:uuid;primary_key" json:"id"`
	ProductID     string    `gorm:"type:uuid;not null;index" json:"product_id"`
	ReviewerName  string    `gorm:"type:varchar(100);not null" json:"reviewer_name"`
	ReviewerEmail string    `gorm:"type:varchar(255)" json:"-"`
	Rating        int       `gorm:"not null" json:"rating"`
	Comment       string    `gorm:"type:text" json:"comment"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (ProductReviewModel) TableName() string {
	return "product_reviews"
}

func (r *ProductReviewModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return nil
}
