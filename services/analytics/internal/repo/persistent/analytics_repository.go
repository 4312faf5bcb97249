package persistent

import (
	"dalil/pkg/models"

	"gorm.io/gorm"
)

// AnalyticsRepository reads the dashboard counters. Each method is one query.
type AnalyticsRepository interface {
	CountProductsByStatus() (map[models.ProductStatus]int64, error)
	CountNews() (total, published int64, err error)
	CountTutorials() (int64, error)
	CountUsers() (total, admins int64, err error)
	CountSubscribers() (total, active int64, err error)
	CountReviews() (int64, error)
	CountCampaignsSent() (int64, error)
	CountMediaFiles() (int64, error)
}

type analyticsRepository struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &analyticsRepository{db: db}
}

type statusCount struct {
	Status models.ProductStatus
	Count  int64
}

type totalAndSubset struct {
	Total  int64
	Subset int64
}

func (r *analyticsRepository) CountProductsByStatus() (map[models.ProductStatus]int64, error) {
	var rows []statusCount
	if err := r.db.Model(&models.Product{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.ProductStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *analyticsRepository) countWithSubset(value interface{}, subset string) (int64, int64, error) {
	var row totalAndSubset
	err := r.db.Model(value).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE " + subset + ") AS subset").
		Scan(&row).Error
	return row.Total, row.Subset, err
}

func (r *analyticsRepository) CountNews() (int64, int64, error) {
	return r.countWithSubset(&models.News{}, "is_published")
}

func (r *analyticsRepository) CountTutorials() (int64, error) {
	var count int64
	err := r.db.Model(&models.Tutorial{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountUsers() (int64, int64, error) {
	return r.countWithSubset(&models.User{}, "role = 'admin'")
}

func (r *analyticsRepository) CountSubscribers() (int64, int64, error) {
	return r.countWithSubset(&models.NewsletterSubscriber{}, "is_active")
}

// CountReviews counts signed-in and anonymous reviews together.
func (r *analyticsRepository) CountReviews() (int64, error) {
	var signedIn, anonymous int64
	if err := r.db.Model(&models.Review{}).Count(&signedIn).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&models.ProductReview{}).Count(&anonymous).Error; err != nil {
		return 0, err
	}
	return signedIn + anonymous, nil
}

func (r *analyticsRepository) CountCampaignsSent() (int64, error) {
	var count int64
	err := r.db.Model(&models.EmailCampaign{}).Where("status = ?", models.CampaignSent).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountMediaFiles() (int64, error) {
	var count int64
	err := r.db.Model(&models.MediaFile{}).Count(&count).Error
	return count, err
}
