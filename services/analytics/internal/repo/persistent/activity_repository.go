package persistent

import (
	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository interface {
	List(filter entity.ActivityFilter) ([]*entity.ActivityLog, int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) filtered(filter entity.ActivityFilter) *gorm.DB {
	query := r.db.Table("activity_logs AS l")
	if filter.AdminID != "" {
		query = query.Where("l.admin_id = ?", filter.AdminID)
	}
	if filter.Action != "" {
		query = query.Where("l.action = ?", filter.Action)
	}
	if filter.ResourceType != "" {
		query = query.Where("l.resource_type = ?", filter.ResourceType)
	}
	if filter.ResourceID != "" {
		query = query.Where("l.resource_id = ?", filter.ResourceID)
	}
	if filter.From != nil {
		query = query.Where("l.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("l.created_at <= ?", *filter.To)
	}
	return query
}

func (r *activityRepository) List(filter entity.ActivityFilter) ([]*entity.ActivityLog, int64, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []model.ActivityLogRow
	err := r.filtered(filter).
		Select("l.id, l.admin_id, COALESCE(u.email, '') AS admin_email, l.action, l.resource_type, l.resource_id, l.details, l.created_at").
		Joins("LEFT JOIN users u ON u.id = l.admin_id").
		Order("l.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return ToActivityEntities(rows), total, nil
}
