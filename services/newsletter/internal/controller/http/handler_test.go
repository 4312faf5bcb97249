package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSubscriptionUseCase struct {
	mock.Mock
}

func (m *MockSubscriptionUseCase) Subscribe(email, locale string) (*entity.Subscriber, error) {
	args := m.Called(email, locale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Subscriber), args.Error(1)
}

func (m *MockSubscriptionUseCase) Unsubscribe(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockSubscriptionUseCase) ListSubscribers(adminID string, filter entity.SubscriberFilter) ([]*entity.Subscriber, int64, error) {
	args := m.Called(adminID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Subscriber), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionUseCase) DeleteSubscriber(adminID, id string) error {
	args := m.Called(adminID, id)
	return args.Error(0)
}

type MockCampaignUseCase struct {
	mock.Mock
}

func (m *MockCampaignUseCase) campaign(args mock.Arguments) (*entity.Campaign, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Campaign), args.Error(1)
}

func (m *MockCampaignUseCase) ListCampaigns(adminID string, filter entity.CampaignFilter) ([]*entity.Campaign, int64, error) {
	args := m.Called(adminID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.Campaign), args.Get(1).(int64), args.Error(2)
}

func (m *MockCampaignUseCase) GetCampaign(adminID, id string) (*entity.Campaign, error) {
	return m.campaign(m.Called(adminID, id))
}

func (m *MockCampaignUseCase) CreateCampaign(adminID string, input entity.CampaignInput) (*entity.Campaign, error) {
	return m.campaign(m.Called(adminID, input))
}

func (m *MockCampaignUseCase) UpdateCampaign(adminID, id string, update entity.CampaignUpdate) (*entity.Campaign, error) {
	return m.campaign(m.Called(adminID, id, update))
}

func (m *MockCampaignUseCase) ScheduleCampaign(adminID, id string, at time.Time) (*entity.Campaign, error) {
	return m.campaign(m.Called(adminID, id, at))
}

func (m *MockCampaignUseCase) UnscheduleCampaign(adminID, id string) (*entity.Campaign, error) {
	return m.campaign(m.Called(adminID, id))
}

func (m *MockCampaignUseCase) CancelCampaign(adminID, id string) (*entity.Campaign, error) {
	return m.campaign(m.Called(adminID, id))
}

func (m *MockCampaignUseCase) DeleteCampaign(adminID, id string) error {
	args := m.Called(adminID, id)
	return args.Error(0)
}

func (m *MockCampaignUseCase) SendCampaign(ctx context.Context, adminID, id string) (*entity.Campaign, error) {
	return m.campaign(m.Called(adminID, id))
}

func (m *MockCampaignUseCase) Deliver(ctx context.Context, id string) (*entity.DeliveryReport, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DeliveryReport), args.Error(1)
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

func withLocale(locale string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(response.LocaleKey, locale)
		h(c)
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Result {
	t.Helper()
	var body response.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSubscribe_DefaultsToRequestLocale(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	handler := NewSubscriptionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/newsletter/subscribe", withLocale("en", handler.Subscribe))

	mockUseCase.On("Subscribe", "a@b.co", "en").Return(&entity.Subscriber{Email: "a@b.co", Locale: "en"}, nil)

	w := postJSON(router, "/newsletter/subscribe", `{"email":"a@b.co"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"email":"a@b.co","locale":"en"}}`, w.Body.String())
}

func TestSubscribe_AlreadySubscribedLocalized(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	handler := NewSubscriptionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/newsletter/subscribe", withLocale("en", handler.Subscribe))

	mockUseCase.On("Subscribe", "a@b.co", "ar").Return(nil, usecase.ErrAlreadySubscribed)

	w := postJSON(router, "/newsletter/subscribe", `{"email":"a@b.co","locale":"ar"}`)

	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "newsletter.alreadySubscribed", body.Code)
	assert.Equal(t, "You are already subscribed", body.Error)
}

func TestSubscribe_MissingEmail(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	handler := NewSubscriptionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/newsletter/subscribe", handler.Subscribe)

	w := postJSON(router, "/newsletter/subscribe", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Subscribe", mock.Anything, mock.Anything)
}

func TestUnsubscribe_FromLink(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	handler := NewSubscriptionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/newsletter/unsubscribe", handler.Unsubscribe)

	mockUseCase.On("Unsubscribe", "a@b.co").Return(nil)

	w := postJSON(router, "/newsletter/unsubscribe?email=a%40b.co&lang=ar", ``)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestUnsubscribe_Unknown(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	handler := NewSubscriptionHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/newsletter/unsubscribe", handler.Unsubscribe)

	mockUseCase.On("Unsubscribe", "x@y.co").Return(usecase.ErrNotSubscribed)

	w := postJSON(router, "/newsletter/unsubscribe", `{"email":"x@y.co"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListSubscribers_Filters(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	handler := NewSubscriptionHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/subscribers", asUser("admin-1", handler.ListSubscribers))

	active := false
	mockUseCase.On("ListSubscribers", "admin-1", entity.SubscriberFilter{Active: &active, Search: "gmail", Offset: 20}).
		Return([]*entity.Subscriber{{ID: "s-1"}}, int64(21), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/subscribers?active=false&q=gmail&offset=20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(21), data["total"])
	assert.Equal(t, float64(50), data["limit"])
}

func TestDeleteSubscriber_Forbidden(t *testing.T) {
	mockUseCase := new(MockSubscriptionUseCase)
	handler := NewSubscriptionHandler(mockUseCase)

	router := setupTestRouter()
	router.DELETE("/admin/subscribers/:id", asUser("user-1", handler.DeleteSubscriber))

	mockUseCase.On("DeleteSubscriber", "user-1", "s-1").Return(apperr.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/subscribers/s-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateCampaign(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/campaigns", asUser("admin-1", handler.CreateCampaign))

	input := entity.CampaignInput{Subject: "Weekly", ContentHTML: "<p>x</p>"}
	mockUseCase.On("CreateCampaign", "admin-1", input).Return(&entity.Campaign{ID: "c-1", Subject: "Weekly", Status: entity.CampaignDraft}, nil)

	w := postJSON(router, "/admin/campaigns", `{"subject":"Weekly","content_html":"<p>x</p>"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "draft", data["status"])
}

func TestScheduleCampaign_ParsesTime(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/campaigns/:id/schedule", asUser("admin-1", handler.ScheduleCampaign))

	at := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	mockUseCase.On("ScheduleCampaign", "admin-1", "c-1", mock.MatchedBy(func(got time.Time) bool { return got.Equal(at) })).
		Return(&entity.Campaign{ID: "c-1", Status: entity.CampaignScheduled, ScheduledAt: &at}, nil)

	w := postJSON(router, "/admin/campaigns/c-1/schedule", `{"scheduled_at":"2026-06-01T08:00:00Z"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}

func TestScheduleCampaign_BadTime(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/campaigns/:id/schedule", asUser("admin-1", handler.ScheduleCampaign))

	w := postJSON(router, "/admin/campaigns/c-1/schedule", `{"scheduled_at":"tomorrow"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "ScheduleCampaign", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnscheduleCampaign(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/campaigns/:id/unschedule", asUser("admin-1", handler.UnscheduleCampaign))

	mockUseCase.On("UnscheduleCampaign", "admin-1", "c-1").Return(&entity.Campaign{ID: "c-1", Status: entity.CampaignDraft}, nil)
	mockUseCase.On("UnscheduleCampaign", "admin-1", "c-2").Return(nil, usecase.ErrNotScheduled)

	w := postJSON(router, "/admin/campaigns/c-1/unschedule", ``)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "draft", decode(t, w).Data.(map[string]interface{})["status"])

	w = postJSON(router, "/admin/campaigns/c-2/unschedule", ``)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "campaign.notScheduled", decode(t, w).Code)
}

func TestSendCampaign_NotDraftIsConflict(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/campaigns/:id/send", asUser("admin-1", handler.SendCampaign))

	mockUseCase.On("SendCampaign", "admin-1", "c-1").Return(nil, usecase.ErrCampaignNotDraft)

	w := postJSON(router, "/admin/campaigns/c-1/send", ``)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "campaign.notDraft", decode(t, w).Code)
}

func TestSendCampaign_QueuedIsAccepted(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/campaigns/:id/send", asUser("admin-1", handler.SendCampaign))

	mockUseCase.On("SendCampaign", "admin-1", "c-1").Return(&entity.Campaign{ID: "c-1", Status: entity.CampaignSending}, nil)

	w := postJSON(router, "/admin/campaigns/c-1/send", ``)

	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestSendCampaign_InlineIsOK(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.POST("/admin/campaigns/:id/send", asUser("admin-1", handler.SendCampaign))

	mockUseCase.On("SendCampaign", "admin-1", "c-1").Return(&entity.Campaign{ID: "c-1", Status: entity.CampaignSent, RecipientsCount: 3}, nil)

	w := postJSON(router, "/admin/campaigns/c-1/send", ``)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, float64(3), data["recipients_count"])
}

func TestListCampaigns_StatusFilter(t *testing.T) {
	mockUseCase := new(MockCampaignUseCase)
	handler := NewCampaignHandler(mockUseCase)

	router := setupTestRouter()
	router.GET("/admin/campaigns", asUser("admin-1", handler.ListCampaigns))

	mockUseCase.On("ListCampaigns", "admin-1", entity.CampaignFilter{Status: entity.CampaignSent}).Return([]*entity.Campaign{}, int64(0), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/campaigns?status=sent", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockUseCase.AssertExpectations(t)
}
