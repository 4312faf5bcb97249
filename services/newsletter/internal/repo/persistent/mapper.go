package persistent

import (
	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/model"
)

func ToSubscriberEntity(m *model.SubscriberModel) *entity.Subscriber {
	if m == nil {
		return nil
	}
	return &entity.Subscriber{
		ID:             m.ID,
		Email:          m.Email,
		Locale:         m.Locale,
		IsActive:       m.IsActive,
		SubscribedAt:   m.SubscribedAt,
		UnsubscribedAt: m.UnsubscribedAt,
		CreatedAt:      m.CreatedAt,
	}
}

func ToSubscriberModel(e *entity.Subscriber) *model.SubscriberModel {
	if e == nil {
		return nil
	}
	return &model.SubscriberModel{
		ID:             e.ID,
		Email:          e.Email,
		Locale:         e.Locale,
		IsActive:       e.IsActive,
		SubscribedAt:   e.SubscribedAt,
		UnsubscribedAt: e.UnsubscribedAt,
		CreatedAt:      e.CreatedAt,
	}
}

func ToCampaignEntity(m *model.CampaignModel) *entity.Campaign {
	if m == nil {
		return nil
	}

	c := &entity.Campaign{
		ID:              m.ID,
		Subject:         m.Subject,
		ContentHTML:     m.ContentHTML,
		Status:          entity.CampaignStatus(m.Status),
		ScheduledAt:     m.ScheduledAt,
		SentAt:          m.SentAt,
		RecipientsCount: m.RecipientsCount,
		FailedCount:     m.FailedCount,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.CreatedBy != nil {
		c.CreatedBy = *m.CreatedBy
	}
	return c
}

func ToCampaignModel(e *entity.Campaign) *model.CampaignModel {
	if e == nil {
		return nil
	}

	m := &model.CampaignModel{
		ID:              e.ID,
		Subject:         e.Subject,
		ContentHTML:     e.ContentHTML,
		Status:          string(e.Status),
		ScheduledAt:     e.ScheduledAt,
		SentAt:          e.SentAt,
		RecipientsCount: e.RecipientsCount,
		FailedCount:     e.FailedCount,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
	if e.CreatedBy != "" {
		createdBy := e.CreatedBy
		m.CreatedBy = &createdBy
	}
	return m
}

// campaignColumns leaves out delivery results; MarkSent owns those.
func campaignColumns(e *entity.Campaign) map[string]interface{} {
	return map[string]interface{}{
		"subject":      e.Subject,
		"content_html": e.ContentHTML,
		"status":       string(e.Status),
		"scheduled_at": e.ScheduledAt,
	}
}
