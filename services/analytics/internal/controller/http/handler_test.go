package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAnalyticsUseCase struct {
	mock.Mock
}

func (m *MockAnalyticsUseCase) GetDashboard(adminID string) (*entity.Dashboard, error) {
	args := m.Called(adminID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Dashboard), args.Error(1)
}

func (m *MockAnalyticsUseCase) ListActivity(adminID string, filter entity.ActivityFilter) ([]*entity.ActivityLog, int64, error) {
	args := m.Called(adminID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.ActivityLog), args.Get(1).(int64), args.Error(2)
}

type MockSettingsUseCase struct {
	mock.Mock
}

func (m *MockSettingsUseCase) ListSettings() ([]*entity.Setting, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Setting), args.Error(1)
}

func (m *MockSettingsUseCase) GetSetting(key string) (*entity.Setting, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Setting), args.Error(1)
}

func (m *MockSettingsUseCase) UpsertSetting(adminID, key string, value json.RawMessage) (*entity.Setting, error) {
	args := m.Called(adminID, key, string(value))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Setting), args.Error(1)
}

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

func TestGetDashboard(t *testing.T) {
	mockUseCase := new(MockAnalyticsUseCase)
	handler := NewAnalyticsHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/dashboard", asUser("admin-1", handler.GetDashboard))

	mockUseCase.On("GetDashboard", "admin-1").Return(&entity.Dashboard{
		Products:  entity.ProductCounts{Total: 5, Pending: 1, Approved: 4},
		Tutorials: 3,
	}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	products := data["products"].(map[string]interface{})
	assert.Equal(t, float64(1), products["pending"])
	assert.Equal(t, float64(3), data["tutorials"])
}

func TestGetDashboard_Forbidden(t *testing.T) {
	mockUseCase := new(MockAnalyticsUseCase)
	handler := NewAnalyticsHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/dashboard", asUser("user-1", handler.GetDashboard))

	mockUseCase.On("GetDashboard", "user-1").Return(nil, apperr.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/dashboard", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListActivity_Filters(t *testing.T) {
	mockUseCase := new(MockAnalyticsUseCase)
	handler := NewAnalyticsHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/activity-logs", asUser("admin-1", handler.ListActivity))

	from := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 30, 23, 59, 59, 999999999, time.UTC)
	mockUseCase.On("ListActivity", "admin-1", mock.MatchedBy(func(f entity.ActivityFilter) bool {
		return f.Action == "approve" &&
			f.ResourceType == "product" &&
			f.ResourceID == "p-1" &&
			f.AdminID == "admin-2" &&
			f.From != nil && f.From.Equal(from) &&
			f.To != nil && f.To.Equal(to) &&
			f.Limit == 10
	})).Return([]*entity.ActivityLog{{ID: "l-1", AdminEmail: "ops@dalil.ai"}}, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/activity-logs?action=approve&resource_type=product&resource_id=p-1&admin_id=admin-2&from=2026-04-01&to=2026-04-30&limit=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total"])
	logs := data["logs"].([]interface{})
	assert.Equal(t, "ops@dalil.ai", logs[0].(map[string]interface{})["admin_email"])
	mockUseCase.AssertExpectations(t)
}

func TestListActivity_RFC3339(t *testing.T) {
	mockUseCase := new(MockAnalyticsUseCase)
	handler := NewAnalyticsHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/activity-logs", asUser("admin-1", handler.ListActivity))

	from := time.Date(2026, 4, 1, 12, 30, 0, 0, time.UTC)
	mockUseCase.On("ListActivity", "admin-1", mock.MatchedBy(func(f entity.ActivityFilter) bool {
		return f.From != nil && f.From.Equal(from) && f.To == nil
	})).Return([]*entity.ActivityLog{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/activity-logs?from=2026-04-01T12:30:00Z", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListActivity_BadDate(t *testing.T) {
	mockUseCase := new(MockAnalyticsUseCase)
	handler := NewAnalyticsHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/activity-logs", asUser("admin-1", handler.ListActivity))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/activity-logs?from=yesterday", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "ListActivity", mock.Anything, mock.Anything)
}

func TestUpsertSetting(t *testing.T) {
	mockUseCase := new(MockSettingsUseCase)
	handler := NewSettingsHandler(mockUseCase)

	router := setupTestRouter()
	router.PUT("/admin/settings/:key", asUser("admin-1", handler.UpsertSetting))

	mockUseCase.On("UpsertSetting", "admin-1", "site.title", `{"ar":"دليل","en":"Dalil"}`).
		Return(&entity.Setting{Key: "site.title", Value: json.RawMessage(`{"ar":"دليل","en":"Dalil"}`)}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/settings/site.title", bytes.NewBufferString(`{"value":{"ar":"دليل","en":"Dalil"}}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "site.title", data["key"])
	assert.Equal(t, "Dalil", data["value"].(map[string]interface{})["en"])
}

func TestUpsertSetting_InvalidLocalized(t *testing.T) {
	mockUseCase := new(MockSettingsUseCase)
	handler := NewSettingsHandler(mockUseCase)

	router := setupTestRouter()
	router.PUT("/admin/settings/:key", func(c *gin.Context) {
		c.Set(response.LocaleKey, "en")
		c.Set(middleware.UserIDKey, "admin-1")
		handler.UpsertSetting(c)
	})

	mockUseCase.On("UpsertSetting", "admin-1", "site.title", "").Return(nil, usecase.ErrInvalidSettingValue)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/settings/site.title", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid setting value", decode(t, w).Error)
}

func TestGetSetting_NotFound(t *testing.T) {
	mockUseCase := new(MockSettingsUseCase)
	handler := NewSettingsHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/settings/:key", handler.GetSetting)

	mockUseCase.On("GetSetting", "missing").Return(nil, usecase.ErrSettingNotFound)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/settings/missing", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
