package usecase

import (
	"time"

	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) Create(subscriber *entity.Subscriber) error {
	args := m.Called(subscriber)
	if args.Error(0) == nil && subscriber.ID == "" {
		subscriber.ID = "sub-new"
	}
	return args.Error(0)
}

func (m *MockSubscriberRepository) GetByEmail(email string) (*entity.Subscriber, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Update(subscriber *entity.Subscriber) error {
	args := m.Called(subscriber)
	return args.Error(0)
}

func (m *MockSubscriberRepository) List(filter entity.SubscriberFilter) ([]*entity.Subscriber, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Subscriber), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriberRepository) ListActive() ([]*entity.Subscriber, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.SubscriberRepository = (*MockSubscriberRepository)(nil)

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) Create(campaign *entity.Campaign) error {
	args := m.Called(campaign)
	if args.Error(0) == nil && campaign.ID == "" {
		campaign.ID = "camp-new"
	}
	return args.Error(0)
}

func (m *MockCampaignRepository) GetByID(id string) (*entity.Campaign, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignRepository) List(filter entity.CampaignFilter) ([]*entity.Campaign, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignRepository) Update(campaign *entity.Campaign, fields ...string) error {
	args := m.Called(campaign, fields)
	return args.Error(0)
}

func (m *MockCampaignRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockCampaignRepository) Transition(id string, from []entity.CampaignStatus, to entity.CampaignStatus) (bool, error) {
	args := m.Called(id, from, to)
	return args.Bool(0), args.Error(1)
}

func (m *MockCampaignRepository) MarkSent(id string, recipients, failed int, sentAt time.Time) error {
	args := m.Called(id, recipients, failed, sentAt)
	return args.Error(0)
}

var _ persistent.CampaignRepository = (*MockCampaignRepository)(nil)
