package usecase

import (
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/repo/persistent"

	"github.com/stretchr/testify/mock"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(product *entity.Product) error {
	args := m.Called(product)
	if args.Error(0) == nil && product.ID == "" {
		product.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(id string) (*entity.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepository) List(filter entity.ProductFilter) ([]*entity.Product, int64, error) {
	args := m.Called(filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Update(product *entity.Product, fields ...string) error {
	args := m.Called(product, fields)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementViews(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockProductRepository) Facets() (*entity.Facets, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Facets), args.Error(1)
}

var _ persistent.ProductRepository = (*MockProductRepository)(nil)

type MockReviewStore struct {
	mock.Mock
}

func (m *MockReviewStore) Exists(productID, userID string) (bool, error) {
	args := m.Called(productID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReviewStore) Create(review *entity.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewStore) CreateAnonymous(review *entity.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewStore) GetByID(id string) (*entity.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewStore) GetAnonymousByID(id string) (*entity.Review, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewStore) Update(review *entity.Review) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewStore) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewStore) DeleteAnonymous(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReviewStore) ListByProduct(productID string, limit, offset int) ([]*entity.Review, error) {
	args := m.Called(productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

func (m *MockReviewStore) ListAnonymousByProduct(productID string, limit, offset int) ([]*entity.Review, error) {
	args := m.Called(productID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

func (m *MockReviewStore) RatingFromStore(productID string) (*entity.Rating, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockReviewStore) RawRatings(productID string) ([]int, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

var _ persistent.ReviewStore = (*MockReviewStore)(nil)
