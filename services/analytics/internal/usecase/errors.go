package usecase

import (
	"errors"

	"dalil/pkg/apperr"

	"gorm.io/gorm"
)

var (
	ErrSettingKeyRequired  = apperr.New(apperr.KindValidation, "settings.keyRequired")
	ErrInvalidSettingValue = apperr.New(apperr.KindValidation, "settings.invalidValue")
	ErrSettingNotFound     = apperr.New(apperr.KindNotFound, "common.notFound")
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
