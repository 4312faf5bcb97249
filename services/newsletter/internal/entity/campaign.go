package entity

import "time"

type CampaignStatus string

const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSending   CampaignStatus = "sending"
	CampaignSent      CampaignStatus = "sent"
	CampaignCancelled CampaignStatus = "cancelled"
)

func (s CampaignStatus) Valid() bool {
	switch s {
	case CampaignDraft, CampaignScheduled, CampaignSending, CampaignSent, CampaignCancelled:
		return true
	}
	return false
}

// Editable reports whether subject and content may still change.
func (s CampaignStatus) Editable() bool {
	return s == CampaignDraft || s == CampaignScheduled
}

type Campaign struct {
	ID              string         `json:"id"`
	Subject         string         `json:"subject"`
	ContentHTML     string         `json:"content_html"`
	Status          CampaignStatus `json:"status"`
	ScheduledAt     *time.Time     `json:"scheduled_at"`
	SentAt          *time.Time     `json:"sent_at"`
	RecipientsCount int            `json:"recipients_count"`
	FailedCount     int            `json:"failed_count"`
	CreatedBy       string         `json:"created_by,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type CampaignFilter struct {
	Status CampaignStatus
	Limit  int
	Offset int
}

type CampaignInput struct {
	Subject     string `json:"subject"`
	ContentHTML string `json:"content_html"`
}

type CampaignUpdate struct {
	Subject     *string `json:"subject"`
	ContentHTML *string `json:"content_html"`
}

// DeliveryReport summarizes one campaign send.
type DeliveryReport struct {
	CampaignID string `json:"campaign_id"`
	Recipients int    `json:"recipients"`
	Failed     int    `json:"failed"`
}
