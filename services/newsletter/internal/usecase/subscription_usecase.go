package usecase

import (
	"errors"
	"strings"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/i18n"
	"dalil/pkg/logger"
	"dalil/pkg/validate"
	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/repo/persistent"

	"gorm.io/gorm"
)

type SubscriptionUseCase interface {
	Subscribe(email, locale string) (*entity.Subscriber, error)
	Unsubscribe(email string) error
	ListSubscribers(adminID string, filter entity.SubscriberFilter) ([]*entity.Subscriber, int64, error)
	DeleteSubscriber(adminID, id string) error
}

type subscriptionUseCase struct {
	subscriberRepo persistent.SubscriberRepository
	gate           authz.Gate
	recorder       audit.Recorder
	logger         *logger.Logger
	now            func() time.Time
}

func NewSubscriptionUseCase(
	subscriberRepo persistent.SubscriberRepository,
	gate authz.Gate,
	recorder audit.Recorder,
	logger *logger.Logger,
) SubscriptionUseCase {
	return &subscriptionUseCase{
		subscriberRepo: subscriberRepo,
		gate:           gate,
		recorder:       recorder,
		logger:         logger,
		now:            time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Subscribe adds a new subscriber or reactivates one who left.
func (uc *subscriptionUseCase) Subscribe(email, locale string) (*entity.Subscriber, error) {
	email = normalizeEmail(email)
	if !validate.Email(email) {
		return nil, ErrInvalidEmail
	}
	if !i18n.IsSupported(locale) {
		locale = i18n.DefaultLanguage
	}

	existing, err := uc.subscriberRepo.GetByEmail(email)
	switch {
	case err == nil && existing.IsActive:
		return nil, ErrAlreadySubscribed
	case err == nil:
		existing.IsActive = true
		existing.Locale = locale
		existing.SubscribedAt = uc.now()
		existing.UnsubscribedAt = nil
		if err := uc.subscriberRepo.Update(existing); err != nil {
			uc.logger.Error("Failed to reactivate subscriber %s: %v", existing.ID, err)
			return nil, apperr.Internal(err)
		}
		uc.logger.Info("Subscriber %s reactivated", existing.ID)
		return existing, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		uc.logger.Error("Failed to look up subscriber: %v", err)
		return nil, apperr.Internal(err)
	}

	subscriber := &entity.Subscriber{
		Email:        email,
		Locale:       locale,
		IsActive:     true,
		SubscribedAt: uc.now(),
	}
	if err := uc.subscriberRepo.Create(subscriber); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadySubscribed
		}
		uc.logger.Error("Failed to create subscriber: %v", err)
		return nil, apperr.Internal(err)
	}
	return subscriber, nil
}

// Unsubscribe is idempotent for addresses that already left.
func (uc *subscriptionUseCase) Unsubscribe(email string) error {
	subscriber, err := uc.subscriberRepo.GetByEmail(normalizeEmail(email))
	if err != nil {
		return storeErr(err, ErrNotSubscribed)
	}
	if !subscriber.IsActive {
		return nil
	}

	now := uc.now()
	subscriber.IsActive = false
	subscriber.UnsubscribedAt = &now
	if err := uc.subscriberRepo.Update(subscriber); err != nil {
		uc.logger.Error("Failed to unsubscribe %s: %v", subscriber.ID, err)
		return apperr.Internal(err)
	}
	return nil
}

func (uc *subscriptionUseCase) ListSubscribers(adminID string, filter entity.SubscriberFilter) ([]*entity.Subscriber, int64, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	subscribers, total, err := uc.subscriberRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list subscribers: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return subscribers, total, nil
}

func (uc *subscriptionUseCase) DeleteSubscriber(adminID, id string) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}

	if err := uc.subscriberRepo.Delete(id); err != nil {
		err = storeErr(err, ErrSubscriberNotFound)
		if apperr.KindOf(err) == apperr.KindInternal {
			uc.logger.Error("Failed to delete subscriber %s: %v", id, err)
		}
		return err
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceSubscriber,
		ResourceID:   id,
	})
	return nil
}
