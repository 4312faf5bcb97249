package persistent

import (
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/model"

	"github.com/lib/pq"
)

func ToProductEntity(m *model.ProductModel) *entity.Product {
	if m == nil {
		return nil
	}

	tags := []string(m.Tags)
	if tags == nil {
		tags = []string{}
	}

	p := &entity.Product{
		ID:              m.ID,
		Name:            m.Name,
		NameAr:          m.NameAr,
		Description:     m.Description,
		DescriptionAr:   m.DescriptionAr,
		Category:        m.Category,
		Label:           m.Label,
		Tags:            tags,
		WebsiteURL:      m.WebsiteURL,
		LogoURL:         m.LogoURL,
		Status:          entity.ProductStatus(m.Status),
		RejectionReason: m.RejectionReason,
		Views:           m.Views,
		IsFeatured:      m.IsFeatured,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.SubmittedBy != nil {
		p.SubmittedBy = *m.SubmittedBy
	}
	return p
}

func ToProductModel(e *entity.Product) *model.ProductModel {
	if e == nil {
		return nil
	}

	m := &model.ProductModel{
		ID:              e.ID,
		Name:            e.Name,
		NameAr:          e.NameAr,
		Description:     e.Description,
		DescriptionAr:   e.DescriptionAr,
		Category:        e.Category,
		Label:           e.Label,
		Tags:            pq.StringArray(e.Tags),
		WebsiteURL:      e.WebsiteURL,
		LogoURL:         e.LogoURL,
		Status:          string(e.Status),
		RejectionReason: e.RejectionReason,
		Views:           e.Views,
		IsFeatured:      e.IsFeatured,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if m.Tags == nil {
		m.Tags = pq.StringArray{}
	}
	if e.SubmittedBy != "" {
		submittedBy := e.SubmittedBy
		m.SubmittedBy = &submittedBy
	}
	return m
}

// productColumns are the product columns admins edit directly.
func productColumns(e *entity.Product) map[string]interface{} {
	tags := pq.StringArray(e.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}
	return map[string]interface{}{
		"name":           e.Name,
		"name_ar":        e.NameAr,
		"description":    e.Description,
		"description_ar": e.DescriptionAr,
		"category":       e.Category,
		"label":          e.Label,
		"tags":           tags,
		"website_url":    e.WebsiteURL,
		"logo_url":       e.LogoURL,
		"is_featured":    e.IsFeatured,
	}
}

func ToReviewEntity(m *model.ReviewModel) *entity.Review {
	if m == nil {
		return nil
	}

	return &entity.Review{
		ID:         m.ID,
		ProductID:  m.ProductID,
		UserID:     m.UserID,
		AuthorName: m.AuthorName,
		Rating:     m.Rating,
		Comment:    m.Comment,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToReviewModel(e *entity.Review) *model.ReviewModel {
	if e == nil {
		return nil
	}

	return &model.ReviewModel{
		ID:        e.ID,
		ProductID: e.ProductID,
		UserID:    e.UserID,
		Rating:    e.Rating,
		Comment:   e.Comment,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToAnonymousReviewEntity(m *model.ProductReviewModel) *entity.Review {
	if m == nil {
		return nil
	}

	return &entity.Review{
		ID:           m.ID,
		ProductID:    m.ProductID,
		AuthorName:   m.ReviewerName,
		Rating:       m.Rating,
		Comment:      m.Comment,
		Anonymous:    true,
		ReviewerMail: m.ReviewerEmail,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func ToAnonymousReviewModel(e *entity.Review) *model.ProductReviewModel {
	if e == nil {
		return nil
	}

	return &model.ProductReviewModel{
		ID:            e.ID,
		ProductID:     e.ProductID,
		ReviewerName:  e.AuthorName,
		ReviewerEmail: e.ReviewerMail,
		Rating:        e.Rating,
		Comment:       e.Comment,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}
