package usecase

import (
	"errors"

	"dalil/pkg/apperr"

	"gorm.io/gorm"
)

var (
	ErrProductNotFound    = apperr.New(apperr.KindNotFound, "product.notFound")
	ErrNameRequired       = apperr.New(apperr.KindValidation, "product.nameRequired")
	ErrInvalidURL         = apperr.New(apperr.KindValidation, "product.invalidURL")
	ErrInvalidRating      = apperr.New(apperr.KindValidation, "review.invalidRating")
	ErrAlreadyReviewed    = apperr.New(apperr.KindConflict, "review.alreadyReviewed")
	ErrReviewNotFound     = apperr.New(apperr.KindNotFound, "review.notFound")
	ErrProductUnavailable = apperr.New(apperr.KindValidation, "review.productUnavailable")
	ErrCommentTooLong     = apperr.New(apperr.KindValidation, "review.commentTooLong")
	ErrReviewerName       = apperr.New(apperr.KindValidation, "review.nameRequired")
)

// storeErr maps a missing row to notFound and anything else to an internal
// error that keeps its cause for the log.
func storeErr(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperr.Internal(err)
}
