package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"dalil/pkg/apperr"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockProductUseCase struct {
	mock.Mock
}

func (m *MockProductUseCase) ListProducts(filter entity.ProductFilter) ([]*entity.Product, int64, bool) {
	args := m.Called(filter)
	return args.Get(0).([]*entity.Product), args.Get(1).(int64), args.Bool(2)
}

func (m *MockProductUseCase) GetProduct(id string) (*entity.ProductDetail, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ProductDetail), args.Error(1)
}

func (m *MockProductUseCase) RecordView(id, viewerKey string) (bool, error) {
	args := m.Called(id, viewerKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductUseCase) SubmitProduct(userID string, input entity.SubmitProductInput, logo *media.Candidate) (*entity.Product, error) {
	args := m.Called(userID, input, logo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductUseCase) GetFacets() (*entity.Facets, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Facets), args.Error(1)
}

func (m *MockProductUseCase) GetRating(productID string) (*entity.Rating, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

func (m *MockProductUseCase) AdminListProducts(adminID string, filter entity.ProductFilter) ([]*entity.Product, int64, error) {
	args := m.Called(adminID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductUseCase) UpdateProduct(adminID, id string, update entity.ProductUpdate) (*entity.Product, error) {
	args := m.Called(adminID, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductUseCase) SetFeatured(adminID, id string, featured bool) (*entity.Product, error) {
	args := m.Called(adminID, id, featured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductUseCase) DeleteProduct(adminID, id string) error {
	args := m.Called(adminID, id)
	return args.Error(0)
}

var _ usecase.ProductUseCase = (*MockProductUseCase)(nil)

type MockReviewUseCase struct {
	mock.Mock
}

func (m *MockReviewUseCase) CreateReview(userID, productID string, rating int, comment string) (*entity.Review, error) {
	args := m.Called(userID, productID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewUseCase) CreateAnonymousReview(productID, name, email string, rating int, comment string) (*entity.Review, error) {
	args := m.Called(productID, name, email, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewUseCase) ListReviews(productID string, limit, offset int) ([]*entity.Review, bool) {
	args := m.Called(productID, limit, offset)
	return args.Get(0).([]*entity.Review), args.Bool(1)
}

func (m *MockReviewUseCase) UpdateReview(userID, reviewID string, rating int, comment string) (*entity.Review, error) {
	args := m.Called(userID, reviewID, rating, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *MockReviewUseCase) DeleteReview(userID, reviewID string) error {
	args := m.Called(userID, reviewID)
	return args.Error(0)
}

func (m *MockReviewUseCase) AdminDeleteReview(adminID, reviewID string, anonymous bool) error {
	args := m.Called(adminID, reviewID, anonymous)
	return args.Error(0)
}

func (m *MockReviewUseCase) GetProductRating(productID string) (*entity.Rating, error) {
	args := m.Called(productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Rating), args.Error(1)
}

var _ usecase.ReviewUseCase = (*MockReviewUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asUser(userID string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		h(c)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Result {
	t.Helper()
	var body response.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListProducts_PassesFilters(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/products", handler.ListProducts)

	featured := true
	mockUseCase.On("ListProducts", entity.ProductFilter{
		Category: "writing",
		Tag:      "llm",
		Search:   "chat",
		Featured: &featured,
		Sort:     "popular",
		Limit:    10,
		Offset:   20,
	}).Return([]*entity.Product{{ID: "p-1"}}, int64(21), false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products?category=writing&tag=LLM&q=+chat+&featured=true&sort=popular&limit=10&offset=20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.True(t, body.Success)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, float64(21), data["total"])
	assert.Equal(t, float64(10), data["limit"])
	mockUseCase.AssertExpectations(t)
}

func TestListProducts_DegradedIsNotStored(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/products", handler.ListProducts)

	mockUseCase.On("ListProducts", mock.Anything).Return([]*entity.Product{}, int64(0), true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestGetProduct_RatingUnavailableIsNotStored(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/products/:id", handler.GetProduct)

	mockUseCase.On("GetProduct", "p-1").Return(&entity.ProductDetail{
		Product:           &entity.Product{ID: "p-1"},
		RatingUnavailable: true,
	}, nil)
	mockUseCase.On("GetProduct", "p-2").Return(&entity.ProductDetail{
		Product: &entity.Product{ID: "p-2"},
		Rating:  entity.Rating{AverageRating: 4, TotalReviews: 1},
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/p-1", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/products/p-2", nil)
	router.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Cache-Control"))
}

func TestGetProduct_NotFoundIsLocalized(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/products/:id", func(c *gin.Context) {
		c.Set(response.LocaleKey, "en")
		handler.GetProduct(c)
	})

	mockUseCase.On("GetProduct", "missing").Return(nil, usecase.ErrProductNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "product.notFound", body.Code)
	assert.Equal(t, "Tool not found", body.Error)
}

func TestRecordView_AnonymousUsesClientIP(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/products/:id/view", handler.RecordView)

	mockUseCase.On("RecordView", "p-1", "192.0.2.10").Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/products/p-1/view", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"counted":true}}`, w.Body.String())
}

func TestRecordView_SignedInUsesUserID(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/products/:id/view", asUser("user-7", handler.RecordView))

	mockUseCase.On("RecordView", "p-1", "user-7").Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/products/p-1/view", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSubmitProduct_WithLogo(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/products", asUser("user-1", handler.SubmitProduct))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("name", "Whisper")
	writer.WriteField("tags", "audio,speech")
	part, _ := writer.CreateFormFile("logo", "logo.png")
	part.Write([]byte("fake png"))
	writer.Close()

	mockUseCase.On("SubmitProduct", "user-1", mock.MatchedBy(func(in entity.SubmitProductInput) bool {
		return in.Name == "Whisper" && len(in.Tags) == 2
	}), mock.MatchedBy(func(logo *media.Candidate) bool {
		return logo != nil && logo.Name == "logo.png" && string(logo.Content) == "fake png"
	})).Return(&entity.Product{ID: "p-9", Status: entity.StatusPending}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestSubmitProduct_ValidationError(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/products", asUser("user-1", handler.SubmitProduct))

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	writer.WriteField("name", "")
	writer.Close()

	mockUseCase.On("SubmitProduct", "user-1", mock.Anything, (*media.Candidate)(nil)).Return(nil, usecase.ErrNameRequired)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "product.nameRequired", decode(t, w).Code)
}

func TestUpdateProduct_Forbidden(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/admin/products/:id", asUser("user-1", handler.UpdateProduct))

	mockUseCase.On("UpdateProduct", "user-1", "p-1", mock.Anything).Return(nil, apperr.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/products/p-1", bytes.NewBufferString(`{"name":"X"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "auth.adminOnly", decode(t, w).Code)
}

func TestUpdateProduct_BadJSON(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/admin/products/:id", asUser("admin-1", handler.UpdateProduct))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/products/p-1", bytes.NewBufferString(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "UpdateProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetFeatured(t *testing.T) {
	mockUseCase := new(MockProductUseCase)
	handler := NewProductHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PATCH("/admin/products/:id/featured", asUser("admin-1", handler.SetFeatured))

	mockUseCase.On("SetFeatured", "admin-1", "p-1", true).Return(&entity.Product{ID: "p-1", IsFeatured: true}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/admin/products/p-1/featured", bytes.NewBufferString(`{"featured":true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestCreateReview_InvalidRatingArabic(t *testing.T) {
	mockUseCase := new(MockReviewUseCase)
	handler := NewReviewHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/products/:id/reviews", asUser("user-1", handler.CreateReview))

	mockUseCase.On("CreateReview", "user-1", "p-1", 6, "").Return(nil, usecase.ErrInvalidRating)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/products/p-1/reviews", bytes.NewBufferString(`{"rating":6}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "review.invalidRating", body.Code)
	assert.Equal(t, "التقييم يجب أن يكون بين 1 و 5", body.Error)
}

func TestCreateReview_AlreadyReviewed(t *testing.T) {
	mockUseCase := new(MockReviewUseCase)
	handler := NewReviewHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/products/:id/reviews", asUser("user-1", handler.CreateReview))

	mockUseCase.On("CreateReview", "user-1", "p-1", 4, "nice").Return(nil, usecase.ErrAlreadyReviewed)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/products/p-1/reviews", bytes.NewBufferString(`{"rating":4,"comment":"nice"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListReviews(t *testing.T) {
	mockUseCase := new(MockReviewUseCase)
	handler := NewReviewHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/products/:id/reviews", handler.ListReviews)

	mockUseCase.On("ListReviews", "p-1", 5, 0).Return([]*entity.Review{{ID: "r-1", Rating: 5}}, false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/p-1/reviews?limit=5", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w).Data, 1)
}

func TestListReviews_DegradedIsNotStored(t *testing.T) {
	mockUseCase := new(MockReviewUseCase)
	handler := NewReviewHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/products/:id/reviews", handler.ListReviews)

	mockUseCase.On("ListReviews", "p-1", 0, 0).Return([]*entity.Review{}, true)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/products/p-1/reviews", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
}

func TestAdminDeleteReview_Anonymous(t *testing.T) {
	mockUseCase := new(MockReviewUseCase)
	handler := NewReviewHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/admin/reviews/:id", asUser("admin-1", handler.AdminDeleteReview))

	mockUseCase.On("AdminDeleteReview", "admin-1", "r-1", true).Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/reviews/r-1?anonymous=true", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
