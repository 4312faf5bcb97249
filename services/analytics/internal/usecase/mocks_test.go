package usecase

import (
	"dalil/pkg/models"
	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockAnalyticsRepository struct {
	mock.Mock
}

func (m *MockAnalyticsRepository) CountProductsByStatus() (map[models.ProductStatus]int64, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.ProductStatus]int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountNews() (int64, int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnalyticsRepository) CountTutorials() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountUsers() (int64, int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnalyticsRepository) CountSubscribers() (int64, int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockAnalyticsRepository) CountReviews() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountCampaignsSent() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAnalyticsRepository) CountMediaFiles() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

var _ persistent.AnalyticsRepository = (*MockAnalyticsRepository)(nil)

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) List(filter entity.ActivityFilter) ([]*entity.ActivityLog, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.ActivityLog), args.Get(1).(int64), args.Error(2)
}

var _ persistent.ActivityRepository = (*MockActivityRepository)(nil)

type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) List() ([]*entity.Setting, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Setting), args.Error(1)
}

func (m *MockSettingsRepository) GetByKey(key string) (*entity.Setting, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Setting), args.Error(1)
}

func (m *MockSettingsRepository) Upsert(key string, value []byte, updatedBy string) (*entity.Setting, error) {
	args := m.Called(key, string(value), updatedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Setting), args.Error(1)
}

var _ persistent.SettingsRepository = (*MockSettingsRepository)(nil)
