package usecase

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/logger"
	"dalil/pkg/validate"
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/repo/persistent"

	"gorm.io/gorm"
)

const (
	MinRating        = 1
	MaxRating        = 5
	maxCommentLength = 2000
	maxReviewerName  = 100
)

type ReviewUseCase interface {
	CreateReview(userID, productID string, rating int, comment string) (*entity.Review, error)
	CreateAnonymousReview(productID, name, email string, rating int, comment string) (*entity.Review, error)
	ListReviews(productID string, limit, offset int) (reviews []*entity.Review, degraded bool)
	UpdateReview(userID, reviewID string, rating int, comment string) (*entity.Review, error)
	DeleteReview(userID, reviewID string) error
	AdminDeleteReview(adminID, reviewID string, anonymous bool) error
	GetProductRating(productID string) (*entity.Rating, error)
}

type reviewUseCase struct {
	reviewRepo  persistent.ReviewRepository
	productRepo persistent.ProductRepository
	ratings     *RatingCalculator
	gate        authz.Gate
	recorder    audit.Recorder
	revalidator cache.Revalidator
	logger      *logger.Logger
}

func NewReviewUseCase(
	reviewRepo persistent.ReviewRepository,
	productRepo persistent.ProductRepository,
	ratings *RatingCalculator,
	gate authz.Gate,
	recorder audit.Recorder,
	revalidator cache.Revalidator,
	logger *logger.Logger,
) ReviewUseCase {
	return &reviewUseCase{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		ratings:     ratings,
		gate:        gate,
		recorder:    recorder,
		revalidator: revalidator,
		logger:      logger,
	}
}

func validateReview(rating int, comment string) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if utf8.RuneCountInString(comment) > maxCommentLength {
		return ErrCommentTooLong
	}
	return nil
}

// reviewableProduct returns an error unless the product exists and is approved.
func (uc *reviewUseCase) reviewableProduct(productID string) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		uc.logger.Error("Failed to load product %s: %v", productID, err)
		return apperr.Internal(err)
	}
	if product.Status != entity.StatusApproved {
		return ErrProductUnavailable
	}
	return nil
}

func (uc *reviewUseCase) productPath(productID string) string {
	return cache.PathProducts + "/" + productID
}

func (uc *reviewUseCase) CreateReview(userID, productID string, rating int, comment string) (*entity.Review, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	comment = strings.TrimSpace(comment)
	if err := validateReview(rating, comment); err != nil {
		return nil, err
	}
	if err := uc.reviewableProduct(productID); err != nil {
		return nil, err
	}

	exists, err := uc.reviewRepo.Exists(productID, userID)
	if err != nil {
		uc.logger.Error("Failed to check existing review: %v", err)
		return nil, apperr.Internal(err)
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &entity.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := uc.reviewRepo.Create(review); err != nil {
		// the unique index closes the window between Exists and Create
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyReviewed
		}
		uc.logger.Error("Failed to create review: %v", err)
		return nil, apperr.Internal(err)
	}

	uc.revalidator.RevalidatePath(uc.productPath(productID))
	return review, nil
}

func (uc *reviewUseCase) CreateAnonymousReview(productID, name, email string, rating int, comment string) (*entity.Review, error) {
	comment = strings.TrimSpace(comment)
	if err := validateReview(rating, comment); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxReviewerName {
		return nil, ErrReviewerName
	}
	email = strings.TrimSpace(email)
	if email != "" {
		if !validate.Email(email) {
			return nil, apperr.ErrInvalidInput
		}
	}
	if err := uc.reviewableProduct(productID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ProductID:    productID,
		AuthorName:   name,
		ReviewerMail: email,
		Rating:       rating,
		Comment:      comment,
		Anonymous:    true,
	}
	if err := uc.reviewRepo.CreateAnonymous(review); err != nil {
		uc.logger.Error("Failed to create anonymous review: %v", err)
		return nil, apperr.Internal(err)
	}

	uc.revalidator.RevalidatePath(uc.productPath(productID))
	return review, nil
}

// ListReviews merges both review tables, newest first. A store failure
// yields an empty list reported as degraded.
func (uc *reviewUseCase) ListReviews(productID string, limit, offset int) ([]*entity.Review, bool) {
	limit, offset = NormalizePage(limit, offset)
	window := limit + offset

	userReviews, err := uc.reviewRepo.ListByProduct(productID, window, 0)
	if err != nil {
		uc.logger.Error("Failed to list reviews for %s: %v", productID, err)
		return []*entity.Review{}, true
	}
	anonymous, err := uc.reviewRepo.ListAnonymousByProduct(productID, window, 0)
	if err != nil {
		uc.logger.Error("Failed to list anonymous reviews for %s: %v", productID, err)
		return []*entity.Review{}, true
	}

	merged := append(userReviews, anonymous...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if offset >= len(merged) {
		return []*entity.Review{}, false
	}
	end := offset + limit
	if end > len(merged) {
		end = len(merged)
	}
	return merged[offset:end], false
}

func (uc *reviewUseCase) ownReview(userID, reviewID string) (*entity.Review, error) {
	if userID == "" {
		return nil, apperr.ErrUnauthenticated
	}
	review, err := uc.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, storeErr(err, ErrReviewNotFound)
	}
	if review.UserID != userID {
		return nil, apperr.ErrForbidden
	}
	return review, nil
}

func (uc *reviewUseCase) UpdateReview(userID, reviewID string, rating int, comment string) (*entity.Review, error) {
	comment = strings.TrimSpace(comment)
	if err := validateReview(rating, comment); err != nil {
		return nil, err
	}

	review, err := uc.ownReview(userID, reviewID)
	if err != nil {
		return nil, err
	}

	review.Rating = rating
	review.Comment = comment
	if err := uc.reviewRepo.Update(review); err != nil {
		uc.logger.Error("Failed to update review %s: %v", reviewID, err)
		return nil, apperr.Internal(err)
	}

	uc.revalidator.RevalidatePath(uc.productPath(review.ProductID))
	return review, nil
}

func (uc *reviewUseCase) DeleteReview(userID, reviewID string) error {
	review, err := uc.ownReview(userID, reviewID)
	if err != nil {
		return err
	}

	if err := uc.reviewRepo.Delete(reviewID); err != nil {
		return storeErr(err, ErrReviewNotFound)
	}

	uc.revalidator.RevalidatePath(uc.productPath(review.ProductID))
	return nil
}

func (uc *reviewUseCase) AdminDeleteReview(adminID, reviewID string, anonymous bool) error {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return err
	}

	var (
		review *entity.Review
		err    error
	)
	if anonymous {
		review, err = uc.reviewRepo.GetAnonymousByID(reviewID)
	} else {
		review, err = uc.reviewRepo.GetByID(reviewID)
	}
	if err != nil {
		return storeErr(err, ErrReviewNotFound)
	}

	if anonymous {
		err = uc.reviewRepo.DeleteAnonymous(reviewID)
	} else {
		err = uc.reviewRepo.Delete(reviewID)
	}
	if err != nil {
		uc.logger.Error("Failed to delete review %s: %v", reviewID, err)
		return storeErr(err, ErrReviewNotFound)
	}

	uc.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       audit.ActionDelete,
		ResourceType: audit.ResourceReview,
		ResourceID:   reviewID,
		Details: map[string]interface{}{
			"product_id": review.ProductID,
			"anonymous":  anonymous,
			"rating":     review.Rating,
		},
	})
	uc.revalidator.RevalidatePath(uc.productPath(review.ProductID))
	return nil
}

func (uc *reviewUseCase) GetProductRating(productID string) (*entity.Rating, error) {
	return uc.ratings.Get(productID)
}
