package persistent

import (
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewRepository interface {
	Exists(productID, userID string) (bool, error)
	Create(review *entity.Review) error
	CreateAnonymous(review *entity.Review) error
	GetByID(id string) (*entity.Review, error)
	GetAnonymousByID(id string) (*entity.Review, error)
	Update(review *entity.Review) error
	Delete(id string) error
	DeleteAnonymous(id string) error
	ListByProduct(productID string, limit, offset int) ([]*entity.Review, error)
	ListAnonymousByProduct(productID string, limit, offset int) ([]*entity.Review, error)
}

// RatingRepository reads what the rating summary is computed from.
type RatingRepository interface {
	RatingFromStore(productID string) (*entity.Rating, error)
	RawRatings(productID string) ([]int, error)
}

// ReviewStore is implemented by the gorm repository.
type ReviewStore interface {
	ReviewRepository
	RatingRepository
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewStore {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Exists(productID, userID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.ReviewModel{}).Where("product_id = ? AND user_id = ?", productID, userID).Count(&count).Error
	return count > 0, err
}

func (r *reviewRepository) Create(review *entity.Review) error {
	reviewModel := ToReviewModel(review)
	if reviewModel.ID == "" {
		reviewModel.ID = uuid.New().String()
	}
	if err := r.db.Create(reviewModel).Error; err != nil {
		return err
	}
	review.ID = reviewModel.ID
	review.CreatedAt = reviewModel.CreatedAt
	review.UpdatedAt = reviewModel.UpdatedAt
	return nil
}

func (r *reviewRepository) CreateAnonymous(review *entity.Review) error {
	reviewModel := ToAnonymousReviewModel(review)
	if reviewModel.ID == "" {
		reviewModel.ID = uuid.New().String()
	}
	if err := r.db.Create(reviewModel).Error; err != nil {
		return err
	}
	*review = *ToAnonymousReviewEntity(reviewModel)
	return nil
}

func (r *reviewRepository) withAuthor() *gorm.DB {
	return r.db.Model(&model.ReviewModel{}).
		Select("reviews.*, COALESCE(NULLIF(users.full_name, ''), split_part(users.email, '@', 1)) AS author_name").
		Joins("LEFT JOIN users ON users.id = reviews.user_id")
}

func (r *reviewRepository) GetByID(id string) (*entity.Review, error) {
	var reviewModel model.ReviewModel
	if err := r.withAuthor().Where("reviews.id = ?", id).First(&reviewModel).Error; err != nil {
		return nil, err
	}
	return ToReviewEntity(&reviewModel), nil
}

func (r *reviewRepository) GetAnonymousByID(id string) (*entity.Review, error) {
	var reviewModel model.ProductReviewModel
	if err := r.db.Where("id = ?", id).First(&reviewModel).Error; err != nil {
		return nil, err
	}
	return ToAnonymousReviewEntity(&reviewModel), nil
}

func (r *reviewRepository) Update(review *entity.Review) error {
	return r.db.Model(&model.ReviewModel{}).Where("id = ?", review.ID).Updates(map[string]interface{}{
		"rating":  review.Rating,
		"comment": review.Comment,
	}).Error
}

func (r *reviewRepository) Delete(id string) error {
	result := r.db.Delete(&model.ReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) DeleteAnonymous(id string) error {
	result := r.db.Delete(&model.ProductReviewModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *reviewRepository) ListByProduct(productID string, limit, offset int) ([]*entity.Review, error) {
	var reviewModels []model.ReviewModel
	query := r.withAuthor().Where("reviews.product_id = ?", productID).Order("reviews.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reviewModels).Error; err != nil {
		return nil, err
	}

	reviews := make([]*entity.Review, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = ToReviewEntity(&reviewModels[i])
	}
	return reviews, nil
}

func (r *reviewRepository) ListAnonymousByProduct(productID string, limit, offset int) ([]*entity.Review, error) {
	var reviewModels []model.ProductReviewModel
	query := r.db.Where("product_id = ?", productID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&reviewModels).Error; err != nil {
		return nil, err
	}

	reviews := make([]*entity.Review, len(reviewModels))
	for i := range reviewModels {
		reviews[i] = ToAnonymousReviewEntity(&reviewModels[i])
	}
	return reviews, nil
}

func (r *reviewRepository) RatingFromStore(productID string) (*entity.Rating, error) {
	var row struct {
		AverageRating float64
		TotalReviews  int64
	}
	if err := r.db.Raw("SELECT average_rating, total_reviews FROM get_product_rating(?)", productID).Scan(&row).Error; err != nil {
		return nil, err
	}
	return &entity.Rating{AverageRating: row.AverageRating, TotalReviews: row.TotalReviews}, nil
}

func (r *reviewRepository) RawRatings(productID string) ([]int, error) {
	var ratings []int
	err := r.db.Raw(
		"SELECT rating FROM reviews WHERE product_id = ? UNION ALL SELECT rating FROM product_reviews WHERE product_id = ?",
		productID, productID,
	).Scan(&ratings).Error
	return ratings, err
}
