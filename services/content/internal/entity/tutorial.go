package entity

import "time"

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type Tutorial struct {
	ID         string     `json:"id"`
	TitleAr    string     `json:"title_ar"`
	TitleEn    string     `json:"title_en"`
	ContentAr  string     `json:"content_ar"`
	ContentEn  string     `json:"content_en"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`
	ImageURL   string     `json:"image_url"`
	Views      int        `json:"views"`
	AuthorID   string     `json:"author_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type TutorialFilter struct {
	Category   string
	Difficulty Difficulty
	Tag        string
	Search     string
	Limit      int
	Offset     int
}

type TutorialInput struct {
	TitleAr    string     `json:"title_ar"`
	TitleEn    string     `json:"title_en"`
	ContentAr  string     `json:"content_ar"`
	ContentEn  string     `json:"content_en"`
	Category   string     `json:"category"`
	Difficulty Difficulty `json:"difficulty"`
	Tags       []string   `json:"tags"`
	ImageURL   string     `json:"image_url"`
}

type TutorialUpdate struct {
	TitleAr    *string     `json:"title_ar"`
	TitleEn    *string     `json:"title_en"`
	ContentAr  *string     `json:"content_ar"`
	ContentEn  *string     `json:"content_en"`
	Category   *string     `json:"category"`
	Difficulty *Difficulty `json:"difficulty"`
	Tags       *[]string   `json:"tags"`
	ImageURL   *string     `json:"image_url"`
}
