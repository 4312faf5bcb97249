package usecase

import (
	"errors"

	"dalil/pkg/apperr"

	"gorm.io/gorm"
)

var ErrMediaNotFound = apperr.New(apperr.KindNotFound, "media.notFound")

func storeErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Internal(err)
}
