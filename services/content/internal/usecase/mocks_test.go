package usecase

import (
	"dalil/services/content/internal/entity"
	"dalil/services/content/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockNewsRepository struct {
	mock.Mock
}

func (m *MockNewsRepository) Create(news *entity.News) error {
	args := m.Called(news)
	if args.Error(0) == nil && news.ID == "" {
		news.ID = "news-new"
	}
	return args.Error(0)
}

func (m *MockNewsRepository) GetByID(id string) (*entity.News, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.News), args.Error(1)
}

func (m *MockNewsRepository) List(filter entity.NewsFilter) ([]*entity.News, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.News), args.Get(1).(int64), args.Error(2)
}

func (m *MockNewsRepository) Update(news *entity.News, fields ...string) error {
	args := m.Called(news, fields)
	return args.Error(0)
}

func (m *MockNewsRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockNewsRepository) IncrementViews(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.NewsRepository = (*MockNewsRepository)(nil)

type MockTutorialRepository struct {
	mock.Mock
}

func (m *MockTutorialRepository) Create(tutorial *entity.Tutorial) error {
	args := m.Called(tutorial)
	if args.Error(0) == nil && tutorial.ID == "" {
		tutorial.ID = "tut-new"
	}
	return args.Error(0)
}

func (m *MockTutorialRepository) GetByID(id string) (*entity.Tutorial, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Tutorial), args.Error(1)
}

func (m *MockTutorialRepository) List(filter entity.TutorialFilter) ([]*entity.Tutorial, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Tutorial), args.Get(1).(int64), args.Error(2)
}

func (m *MockTutorialRepository) Update(tutorial *entity.Tutorial, fields ...string) error {
	args := m.Called(tutorial, fields)
	return args.Error(0)
}

func (m *MockTutorialRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTutorialRepository) IncrementViews(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

var _ persistent.TutorialRepository = (*MockTutorialRepository)(nil)
