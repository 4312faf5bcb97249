package usecase

import (
	"errors"

	"dalil/pkg/apperr"

	"gorm.io/gorm"
)

var (
	ErrInvalidEmail       = apperr.New(apperr.KindValidation, "newsletter.invalidEmail")
	ErrAlreadySubscribed  = apperr.New(apperr.KindConflict, "newsletter.alreadySubscribed")
	ErrNotSubscribed      = apperr.New(apperr.KindNotFound, "newsletter.notSubscribed")
	ErrSubscriberNotFound = apperr.New(apperr.KindNotFound, "newsletter.subscriberNotFound")

	ErrCampaignNotFound    = apperr.New(apperr.KindNotFound, "campaign.notFound")
	ErrSubjectRequired     = apperr.New(apperr.KindValidation, "campaign.subjectRequired")
	ErrCampaignNotDraft    = apperr.New(apperr.KindConflict, "campaign.notDraft")
	ErrCampaignNotEditable = apperr.New(apperr.KindConflict, "campaign.notEditable")
	ErrNotCancellable      = apperr.New(apperr.KindConflict, "campaign.notCancellable")
	ErrScheduleInPast      = apperr.New(apperr.KindValidation, "campaign.scheduleInPast")
	ErrNotScheduled        = apperr.New(apperr.KindConflict, "campaign.notScheduled")
	ErrCampaignSending     = apperr.New(apperr.KindConflict, "campaign.sending")
)

func storeErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Internal(err)
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
