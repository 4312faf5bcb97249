package entity

import "time"

type News struct {
	ID          string     `json:"id"`
	TitleAr     string     `json:"title_ar"`
	TitleEn     string     `json:"title_en"`
	SummaryAr   string     `json:"summary_ar"`
	SummaryEn   string     `json:"summary_en"`
	ContentAr   string     `json:"content_ar"`
	ContentEn   string     `json:"content_en"`
	ImageURL    string     `json:"image_url"`
	Label       string     `json:"label"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at"`
	IsFeatured  bool       `json:"is_featured"`
	Views       int        `json:"views"`
	AuthorID    string     `json:"author_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewsFilter narrows a news listing. PublishedOnly restricts to published
// articles and orders by published_at; it wins over Published.
type NewsFilter struct {
	Label         string
	Featured      *bool
	Published     *bool
	Search        string
	PublishedOnly bool
	Limit         int
	Offset        int
}

type NewsInput struct {
	TitleAr     string `json:"title_ar"`
	TitleEn     string `json:"title_en"`
	SummaryAr   string `json:"summary_ar"`
	SummaryEn   string `json:"summary_en"`
	ContentAr   string `json:"content_ar"`
	ContentEn   string `json:"content_en"`
	ImageURL    string `json:"image_url"`
	Label       string `json:"label"`
	IsPublished bool   `json:"is_published"`
	IsFeatured  bool   `json:"is_featured"`
}

// NewsUpdate holds the fields an admin changes; nil means unchanged.
type NewsUpdate struct {
	TitleAr   *string `json:"title_ar"`
	TitleEn   *string `json:"title_en"`
	SummaryAr *string `json:"summary_ar"`
	SummaryEn *string `json:"summary_en"`
	ContentAr *string `json:"content_ar"`
	ContentEn *string `json:"content_en"`
	ImageURL  *string `json:"image_url"`
	Label     *string `json:"label"`
}
