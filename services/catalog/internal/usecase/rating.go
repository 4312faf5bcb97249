package usecase

import (
	"math"

	"dalil/pkg/apperr"
	"dalil/pkg/logger"
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/repo/persistent"
)

// RatingCalculator summarizes the reviews of a product on every call.
type RatingCalculator struct {
	repo   persistent.RatingRepository
	logger *logger.Logger
}

func NewRatingCalculator(repo persistent.RatingRepository, logger *logger.Logger) *RatingCalculator {
	return &RatingCalculator{repo: repo, logger: logger}
}

// Get asks the get_product_rating store function first and averages the raw
// rows of both review tables when that fails.
func (c *RatingCalculator) Get(productID string) (*entity.Rating, error) {
	rating, err := c.repo.RatingFromStore(productID)
	if err == nil {
		return rating, nil
	}
	c.logger.Warn("get_product_rating failed for %s, computing locally: %v", productID, err)

	ratings, err := c.repo.RawRatings(productID)
	if err != nil {
		c.logger.Error("Failed to fetch ratings for %s: %v", productID, err)
		return nil, apperr.Internal(err)
	}
	return AverageRating(ratings), nil
}

// AverageRating is the mean rounded to one decimal.
func AverageRating(ratings []int) *entity.Rating {
	if len(ratings) == 0 {
		return &entity.Rating{}
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return &entity.Rating{
		AverageRating: math.Round(mean*10) / 10,
		TotalReviews:  int64(len(ratings)),
	}
}
