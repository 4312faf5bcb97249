package usecase

import (
	"dalil/pkg/apperr"
	"dalil/pkg/authz"
	"dalil/pkg/logger"
	"dalil/pkg/models"
	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/repo/persistent"
)

type AnalyticsUseCase interface {
	GetDashboard(adminID string) (*entity.Dashboard, error)
	ListActivity(adminID string, filter entity.ActivityFilter) ([]*entity.ActivityLog, int64, error)
}

type analyticsUseCase struct {
	analyticsRepo persistent.AnalyticsRepository
	activityRepo  persistent.ActivityRepository
	gate          authz.Gate
	logger        *logger.Logger
}

func NewAnalyticsUseCase(
	analyticsRepo persistent.AnalyticsRepository,
	activityRepo persistent.ActivityRepository,
	gate authz.Gate,
	logger *logger.Logger,
) AnalyticsUseCase {
	return &analyticsUseCase{
		analyticsRepo: analyticsRepo,
		activityRepo:  activityRepo,
		gate:          gate,
		logger:        logger,
	}
}

func (uc *analyticsUseCase) GetDashboard(adminID string) (*entity.Dashboard, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, err
	}

	dashboard := &entity.Dashboard{}

	byStatus, err := uc.analyticsRepo.CountProductsByStatus()
	if err != nil {
		uc.logger.Error("Failed to count products: %v", err)
	}
	dashboard.Products = entity.ProductCounts{
		Pending:  byStatus[models.StatusPending],
		Approved: byStatus[models.StatusApproved],
		Rejected: byStatus[models.StatusRejected],
	}
	for _, n := range byStatus {
		dashboard.Products.Total += n
	}

	if total, published, err := uc.analyticsRepo.CountNews(); err != nil {
		uc.logger.Error("Failed to count news: %v", err)
	} else {
		dashboard.News = entity.NewsCounts{Total: total, Published: published}
	}

	if dashboard.Tutorials, err = uc.analyticsRepo.CountTutorials(); err != nil {
		uc.logger.Error("Failed to count tutorials: %v", err)
	}

	if total, admins, err := uc.analyticsRepo.CountUsers(); err != nil {
		uc.logger.Error("Failed to count users: %v", err)
	} else {
		dashboard.Users = entity.UserCounts{Total: total, Admins: admins}
	}

	if total, active, err := uc.analyticsRepo.CountSubscribers(); err != nil {
		uc.logger.Error("Failed to count subscribers: %v", err)
	} else {
		dashboard.Subscribers = entity.SubscriberCounts{Total: total, Active: active}
	}

	if dashboard.Reviews, err = uc.analyticsRepo.CountReviews(); err != nil {
		uc.logger.Error("Failed to count reviews: %v", err)
	}

	if dashboard.CampaignsSent, err = uc.analyticsRepo.CountCampaignsSent(); err != nil {
		uc.logger.Error("Failed to count sent campaigns: %v", err)
	}

	if dashboard.MediaFiles, err = uc.analyticsRepo.CountMediaFiles(); err != nil {
		uc.logger.Error("Failed to count media files: %v", err)
	}

	return dashboard, nil
}

func (uc *analyticsUseCase) ListActivity(adminID string, filter entity.ActivityFilter) ([]*entity.ActivityLog, int64, error) {
	if err := uc.gate.RequireAdmin(adminID); err != nil {
		return nil, 0, err
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, apperr.ErrInvalidInput
	}
	filter.Limit, filter.Offset = NormalizePage(filter.Limit, filter.Offset)

	logs, total, err := uc.activityRepo.List(filter)
	if err != nil {
		uc.logger.Error("Failed to list activity logs: %v", err)
		return nil, 0, apperr.Internal(err)
	}
	return logs, total, nil
}
