package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/email"
	"dalil/pkg/logger"
	"dalil/pkg/metrics"
	"dalil/pkg/queue"
	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/repo/persistent"

	"gorm.io/gorm"
)

type CampaignUseCase interface {
	ListCampaigns(adminID string, filter entity.CampaignFilter) ([]*entity.Campaign, int64, error)
	GetCampaign(adminID, id string) (*entity.Campaign, error)
	CreateCampaign(adminID string, input entity.CampaignInput) (*entity.Campaign, error)
	UpdateCampaign(adminID, id string, update entity.CampaignUpdate) (*entity.Campaign, error)
	ScheduleCampaign(adminID, id string, at time.Time) (*entity.Campaign, error)
	UnscheduleCampaign(adminID, id string) (*entity.Campaign, error)
	CancelCampaign(adminID, id string) (*entity.Campaign, error)
	DeleteCampaign(adminID, id string) error
	SendCampaign(ctx context.Context, adminID, id string) (*entity.Campaign, error)
	Deliver(ctx context.Context, id string) (*entity.DeliveryReport, error)
}

type campaignUseCase struct {
	campaignRepo   persistent.CampaignRepository
	subscriberRepo persistent.SubscriberRepository
	sender         email.Sender
	publisher      queue.Publisher
	gate           authz.Gate
	recorder       audit.Recorder
	siteURL        string
	logger         *logger.Logger
	now            func() time.Time
}

// NewCampaignUseCase builds the campaign use case. A nil publisher delivers
// campaigns inside SendCampaign.
func NewCampaignUseCase(
	campaignRepo persistent.CampaignRepository,
	subscriberRepo persistent.SubscriberRepository,
	sender email.Sender,
	publisher queue.Publisher,
	gate authz.Gate,
	recorder audit.Recorder,
	siteURL string,
	logger *logger.Logger,
) CampaignUseCase {
	return &campaignUseCase{
		campaignRepo:   campaignRepo,
		subscriberRepo: subscriberRepo,
		sender:         sender,
		publisher:      publisher,
		gate:           gate,
		recorder:       recorder,
		siteURL:        strings.TrimRight(siteURL, "/"),
		logger:         logger,
		now:            time.Now,
	}
}

func (uc *campaignUseCase) ListCampaigns(adminID string, filter entity.CampaignFilter) ([]*entity.Campaign, int64, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, 0, apperr.ErrInvalidInput
	}
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	campaigns, total, err := uc.campaignRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list campaigns: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return campaigns, total, nil
}

func (uc *campaignUseCase) GetCampaign(adminID, id string) (*entity.Campaign, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCampaignNotFound)
	}
	return campaign, nil
}

func (uc *campaignUseCase) CreateCampaign(adminID string, input entity.CampaignInput) (*entity.Campaign, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	subject := strings.TrimSpace(input.Subject)
	if subject == "" {
		return nil, ErrSubjectRequired
	}

	campaign := &entity.Campaign{
		Subject:     subject,
		ContentHTML: input.ContentHTML,
		Status:      entity.CampaignDraft,
		CreatedBy:   adminID,
	}
	if err := uc.campaignRepo.Create(campaign); err != nil {
		uc.logger.Error("Failed to create campaign: %v", err)
		return nil, apperr.Internal(err)
	}

	uc.record(adminID, audit.ActionCreate, campaign.ID, map[string]interface{}{"subject": subject})
	return campaign, nil
}

func (uc *campaignUseCase) UpdateCampaign(adminID, id string, update entity.CampaignUpdate) (*entity.Campaign, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	if update.Subject != nil && strings.TrimSpace(*update.Subject) == "" {
		return nil, ErrSubjectRequired
	}

	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCampaignNotFound)
	}
	if !campaign.Status.Editable() {
		return nil, ErrCampaignNotEditable
	}

	var changed []string
	if update.Subject != nil {
		campaign.Subject = strings.TrimSpace(*update.Subject)
		changed = append(changed, "subject")
	}
	if update.ContentHTML != nil {
		campaign.ContentHTML = *update.ContentHTML
		changed = append(changed, "content_html")
	}
	if err := uc.campaignRepo.Update(campaign, changed...); err != nil {
		return nil, uc.updateErr(id, err)
	}

	uc.record(adminID, audit.ActionUpdate, id, map[string]interface{}{"fields": changed})
	return campaign, nil
}

// ScheduleCampaign records a future send time. Nothing sends scheduled
// campaigns automatically; an admin still triggers the send.
func (uc *campaignUseCase) ScheduleCampaign(adminID, id string, at time.Time) (*entity.Campaign, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}
	if !at.After(uc.now()) {
		return nil, ErrScheduleInPast
	}

	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCampaignNotFound)
	}
	if !campaign.Status.Editable() {
		return nil, ErrCampaignNotEditable
	}

	at = at.UTC()
	campaign.Status = entity.CampaignScheduled
	campaign.ScheduledAt = &at
	if err := uc.campaignRepo.Update(campaign, "status", "scheduled_at"); err != nil {
		return nil, uc.updateErr(id, err)
	}

	uc.record(adminID, audit.ActionSchedule, id, map[string]interface{}{"scheduled_at": at.Format(time.RFC3339)})
	return campaign, nil
}

// UnscheduleCampaign puts a scheduled campaign back to draft, the only status
// it can be sent from.
func (uc *campaignUseCase) UnscheduleCampaign(adminID, id string) (*entity.Campaign, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCampaignNotFound)
	}
	if campaign.Status != entity.CampaignScheduled {
		return nil, ErrNotScheduled
	}

	campaign.Status = entity.CampaignDraft
	campaign.ScheduledAt = nil
	if err := uc.campaignRepo.Update(campaign, "status", "scheduled_at"); err != nil {
		return nil, uc.updateErr(id, err)
	}

	uc.record(adminID, audit.ActionUnschedule, id, nil)
	return campaign, nil
}

// updateErr maps a guarded write that matched no row: the campaign was sent,
// cancelled or deleted after it was read.
func (uc *campaignUseCase) updateErr(id string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCampaignNotEditable
	}
	uc.logger.Error("Failed to update campaign %s: %v", id, err)
	return apperr.Internal(err)
}

func (uc *campaignUseCase) CancelCampaign(adminID, id string) (*entity.Campaign, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	ok, err := uc.campaignRepo.Transition(id, []entity.CampaignStatus{entity.CampaignDraft, entity.CampaignScheduled}, entity.CampaignCancelled)
	if err != nil {
		uc.logger.Error("Failed to cancel campaign %s: %v", id, err)
		return nil, apperr.Internal(err)
	}

	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCampaignNotFound)
	}
	if !ok {
		return nil, ErrNotCancellable
	}

	uc.record(adminID, audit.ActionCancel, id, nil)
	return campaign, nil
}

func (uc *campaignUseCase) DeleteCampaign(adminID, id string) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}

	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return storeErr(err, ErrCampaignNotFound)
	}
	if campaign.Status == entity.CampaignSending {
		return ErrCampaignSending
	}
	if err := uc.campaignRepo.Delete(id); err != nil {
		err = storeErr(err, ErrCampaignNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete campaign %s: %v", id, err)
		}
		return err
	}

	uc.record(adminID, audit.ActionDelete, id, map[string]interface{}{"subject": campaign.Subject})
	return nil
}

// SendCampaign claims a draft with one conditional update. If the campaign is
// in any other state nothing changes and ErrCampaignNotDraft is returned.
func (uc *campaignUseCase) SendCampaign(ctx context.Context, adminID, id string) (*entity.Campaign, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	ok, err := uc.campaignRepo.Transition(id, []entity.CampaignStatus{entity.CampaignDraft}, entity.CampaignSending)
	if err != nil {
		uc.logger.Error("Failed to claim campaign %s: %v", id, err)
		return nil, apperr.Internal(err)
	}
	if !ok {
		if _, err := uc.campaignRepo.GetByID(id); err != nil {
			return nil, storeErr(err, ErrCampaignNotFound)
		}
		return nil, ErrCampaignNotDraft
	}

	uc.record(adminID, audit.ActionSendCampaign, id, nil)

	queued := false
	if uc.publisher != nil {
		if err := uc.publisher.PublishCampaignTask(queue.CampaignTask{CampaignID: id, RequestedBy: adminID, RequestedAt: uc.now()}); err != nil {
			uc.logger.Warn("Failed to queue campaign %s, delivering inline: %v", id, err)
		} else {
			queued = true
		}
	}
	if !queued {
		if _, err := uc.Deliver(context.WithoutCancel(ctx), id); err != nil {
			return nil, err
		}
	}

	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCampaignNotFound)
	}
	return campaign, nil
}

// Deliver mails a campaign in "sending" state to every active subscriber and
// marks it sent. Individual failures are counted, never retried.
func (uc *campaignUseCase) Deliver(ctx context.Context, id string) (*entity.DeliveryReport, error) {
	campaign, err := uc.campaignRepo.GetByID(id)
	if err != nil {
		return nil, storeErr(err, ErrCampaignNotFound)
	}
	if campaign.Status != entity.CampaignSending {
		uc.logger.Warn("Skipping delivery of campaign %s in status %s", id, campaign.Status)
		return nil, ErrCampaignNotDraft
	}

	subscribers, err := uc.subscriberRepo.ListActive()
	if err != nil {
		uc.logger.Error("Failed to load subscribers for campaign %s: %v", id, err)
		if _, rerr := uc.campaignRepo.Transition(id, []entity.CampaignStatus{entity.CampaignSending}, entity.CampaignDraft); rerr != nil {
			uc.logger.Error("Failed to return campaign %s to draft: %v", id, rerr)
		}
		return nil, apperr.Internal(err)
	}

	report := &entity.DeliveryReport{CampaignID: id, Recipients: len(subscribers)}
	for _, subscriber := range subscribers {
		msg := email.Message{
			To:      subscriber.Email,
			Subject: campaign.Subject,
			HTML: email.CampaignHTML(
				campaign.ContentHTML,
				email.UnsubscribeURL(uc.siteURL, subscriber.Email, subscriber.Locale),
				subscriber.Locale,
			),
		}
		if err := uc.sender.Send(ctx, msg); err != nil {
			uc.logger.Warn("Campaign %s: %v", id, err)
			report.Failed++
			metrics.CampaignEmailsTotal.WithLabelValues("failed").Inc()
			continue
		}
		metrics.CampaignEmailsTotal.WithLabelValues("sent").Inc()
	}

	if err := uc.campaignRepo.MarkSent(id, report.Recipients, report.Failed, uc.now()); err != nil {
		uc.logger.Error("Failed to mark campaign %s sent: %v", id, err)
		return report, apperr.Internal(err)
	}
	metrics.CampaignsSentTotal.Inc()

	uc.logger.WithFields(map[string]interface{}{
		"campaign_id": id,
		"recipients":  report.Recipients,
		"failed":      report.Failed,
	}).Info("Campaign delivered")
	return report, nil
}

func (uc *campaignUseCase) record(adminID, action, id string, details map[string]interface{}) {
	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       action,
		ResourceType: audit.ResourceCampaign,
		ResourceID:   id,
		Details:      details,
	})
}
