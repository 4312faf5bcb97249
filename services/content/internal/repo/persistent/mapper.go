package persistent

import (
	"dalil/services/content/internal/entity"
	"dalil/services/content/internal/model"

	"github.com/lib/pq"
)

func ToNewsEntity(m *model.NewsModel) *entity.News {
	if m == nil {
		return nil
	}

	n := &entity.News{
		ID:          m.ID,
		TitleAr:     m.TitleAr,
		TitleEn:     m.TitleEn,
		SummaryAr:   m.SummaryAr,
		SummaryEn:   m.SummaryEn,
		ContentAr:   m.ContentAr,
		ContentEn:   m.ContentEn,
		ImageURL:    m.ImageURL,
		Label:       m.Label,
		IsPublished: m.IsPublished,
		PublishedAt: m.PublishedAt,
		IsFeatured:  m.IsFeatured,
		Views:       m.Views,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.AuthorID != nil {
		n.AuthorID = *m.AuthorID
	}
	return n
}

func ToNewsModel(e *entity.News) *model.NewsModel {
	if e == nil {
		return nil
	}

	m := &model.NewsModel{
		ID:          e.ID,
		TitleAr:     e.TitleAr,
		TitleEn:     e.TitleEn,
		SummaryAr:   e.SummaryAr,
		SummaryEn:   e.SummaryEn,
		ContentAr:   e.ContentAr,
		ContentEn:   e.ContentEn,
		ImageURL:    e.ImageURL,
		Label:       e.Label,
		IsPublished: e.IsPublished,
		PublishedAt: e.PublishedAt,
		IsFeatured:  e.IsFeatured,
		Views:       e.Views,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.AuthorID != "" {
		authorID := e.AuthorID
		m.AuthorID = &authorID
	}
	return m
}

// newsColumns excludes views and the author; publishing writes is_published
// and published_at together.
func newsColumns(e *entity.News) map[string]interface{} {
	return map[string]interface{}{
		"title_ar":     e.TitleAr,
		"title_en":     e.TitleEn,
		"summary_ar":   e.SummaryAr,
		"summary_en":   e.SummaryEn,
		"content_ar":   e.ContentAr,
		"content_en":   e.ContentEn,
		"image_url":    e.ImageURL,
		"label":        e.Label,
		"is_published": e.IsPublished,
		"published_at": e.PublishedAt,
		"is_featured":  e.IsFeatured,
	}
}

func ToTutorialEntity(m *model.TutorialModel) *entity.Tutorial {
	if m == nil {
		return nil
	}

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	t := &entity.Tutorial{
		ID:         m.ID,
		TitleAr:    m.TitleAr,
		TitleEn:    m.TitleEn,
		ContentAr:  m.ContentAr,
		ContentEn:  m.ContentEn,
		Category:   m.Category,
		Difficulty: entity.Difficulty(m.Difficulty),
		Tags:       tags,
		ImageURL:   m.ImageURL,
		Views:      m.Views,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.AuthorID != nil {
		t.AuthorID = *m.AuthorID
	}
	return t
}

func ToTutorialModel(e *entity.Tutorial) *model.TutorialModel {
	if e == nil {
		return nil
	}

	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}

	m := &model.TutorialModel{
		ID:         e.ID,
		TitleAr:    e.TitleAr,
		TitleEn:    e.TitleEn,
		ContentAr:  e.ContentAr,
		ContentEn:  e.ContentEn,
		Category:   e.Category,
		Difficulty: string(e.Difficulty),
		Tags:       pq.StringArray(tags),
		ImageURL:   e.ImageURL,
		Views:      e.Views,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
	if e.AuthorID != "" {
		authorID := e.AuthorID
		m.AuthorID = &authorID
	}
	return m
}

func tutorialColumns(e *entity.Tutorial) map[string]interface{} {
	tags := pq.StringArray(e.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}
	return map[string]interface{}{
		"title_ar":   e.TitleAr,
		"title_en":   e.TitleEn,
		"content_ar": e.ContentAr,
		"content_en": e.ContentEn,
		"category":   e.Category,
		"difficulty": string(e.Difficulty),
		"tags":       tags,
		"image_url":  e.ImageURL,
	}
}
