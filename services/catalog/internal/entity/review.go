package entity

import "time"

// Review merges both review tables. Anonymous reviews have no UserID.
type Review struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	UserID       string    `json:"user_id,omitempty"`
	AuthorName   string    `json:"author_name"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	Anonymous    bool      `json:"anonymous"`
	ReviewerMail string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Rating struct {
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int64   `json:"totalReviews"`
}
