package entity

import "time"

type ProductStatus string

const (
	StatusPending  ProductStatus = "pending"
	StatusApproved ProductStatus = "approved"
	StatusRejected ProductStatus = "rejected"
)

type Product struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	NameAr          string        `json:"name_ar"`
	Description     string        `json:"description"`
	DescriptionAr   string        `json:"description_ar"`
	Category        string        `json:"category"`
	Label           string        `json:"label"`
	Tags            []string      `json:"tags"`
	WebsiteURL      string        `json:"website_url"`
	LogoURL         string        `json:"logo_url"`
	Status          ProductStatus `json:"status"`
	RejectionReason string        `json:"rejection_reason,omitempty"`
	SubmittedBy     string        `json:"submitted_by,omitempty"`
	Views           int           `json:"views"`
	IsFeatured      bool          `json:"is_featured"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ProductDetail is a product with its rating summary.
type ProductDetail struct {
	*Product
	Rating Rating `json:"rating"`
	// RatingUnavailable marks a zero Rating that stands in for a failed lookup.
	RatingUnavailable bool `json:"-"`
}

const (
	SortNewest  = "newest"
	SortPopular = "popular"
	SortName    = "name"
)

type ProductFilter struct {
	Category string
	Label    string
	Tag      string
	Search   string
	Featured *bool
	Status   ProductStatus
	Sort     string
	Limit    int
	Offset   int
}

// ProductUpdate carries admin edits; nil fields are left unchanged.
type ProductUpdate struct {
	Name          *string
	NameAr        *string
	Description   *string
	DescriptionAr *string
	Category      *string
	Label         *string
	Tags          *[]string
	WebsiteURL    *string
	LogoURL       *string
	IsFeatured    *bool
}

type SubmitProductInput struct {
	Name          string
	NameAr        string
	Description   string
	DescriptionAr string
	Category      string
	Label         string
	Tags          []string
	WebsiteURL    string
}

// Facets are the distinct filter values of approved products.
type Facets struct {
	Categories []string `json:"categories"`
	Labels     []string `json:"labels"`
	Tags       []string `json:"tags"`
}
