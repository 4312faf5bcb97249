package usecase

import (
	"errors"

	"dalil/pkg/apperr"

	"gorm.io/gorm"
)

var (
	ErrNewsNotFound      = apperr.New(apperr.KindNotFound, "news.notFound")
	ErrNewsTitleRequired = apperr.New(apperr.KindValidation, "news.titleRequired")
	ErrTutorialNotFound  = apperr.New(apperr.KindNotFound, "tutorial.notFound")
	ErrTutorialTitle     = apperr.New(apperr.KindValidation, "tutorial.titleRequired")
	ErrInvalidDifficulty = apperr.New(apperr.KindValidation, "tutorial.invalidDifficulty")
)

func storeErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Internal(err)
}

const (
	DefaultPageSize = 20
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
