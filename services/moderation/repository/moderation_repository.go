package repository

import (
	"dalil/pkg/models"

	"gorm.io/gorm"
)

type ModerationRepository interface {
	GetProductByID(id string) (*models.Product, error)
	GetPendingProducts(limit, offset int) ([]*models.Product, int64, error)
	UpdateProductStatus(id string, status models.ProductStatus, reason string) error
	CountByStatus() (map[models.ProductStatus]int64, error)
}

type moderationRepository struct {
	db *gorm.DB
}

func NewModerationRepository(db *gorm.DB) ModerationRepository {
	return &moderationRepository{db: db}
}

func (r *moderationRepository) GetProductByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// GetPendingProducts returns the oldest submissions first.
func (r *moderationRepository) GetPendingProducts(limit, offset int) ([]*models.Product, int64, error) {
	var (
		products []*models.Product
		total    int64
	)
	query := r.db.Model(&models.Product{}).Where("status = ?", models.StatusPending)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at ASC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *moderationRepository) UpdateProductStatus(id string, status models.ProductStatus, reason string) error {
	result := r.db.Model(&models.Product{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":           status,
		"rejection_reason": reason,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *moderationRepository) CountByStatus() (map[models.ProductStatus]int64, error) {
	var rows []struct {
		Status models.ProductStatus
		Count  int64
	}
	err := r.db.Model(&models.Product{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := map[models.ProductStatus]int64{
		models.StatusPending:  0,
		models.StatusApproved: 0,
		models.StatusRejected: 0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
