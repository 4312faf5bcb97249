package http

import (
	"net/http"
	"strconv"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/analytics/internal/entity"
	"dalil/services/analytics/internal/usecase"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type AnalyticsHandler struct {
	analyticsUseCase usecase.AnalyticsUseCase
}

func NewAnalyticsHandler(analyticsUseCase usecase.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsUseCase: analyticsUseCase}
}

type activityPage struct {
	Logs   []*entity.ActivityLog `json:"logs"`
	Total  int64                 `json:"total"`
	Limit  int                   `json:"limit"`
	Offset int                   `json:"offset"`
}

// GetDashboard godoc
// @Summary      Back-office counters
// @Description  Products by status, news, tutorials, users, subscribers, reviews, sent campaigns and media files
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/dashboard [get]
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.analyticsUseCase.GetDashboard(c.GetString(middleware.UserIDKey))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, dashboard)
}

// ListActivity godoc
// @Summary      Browse the activity log
// @Description  Newest first. from and to accept RFC 3339 or YYYY-MM-DD; a bare "to" date covers the whole day.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        admin_id      query string false "Admin user ID"
// @Param        action        query string false "Action"
// @Param        resource_type query string false "Resource type"
// @Param        resource_id   query string false "Resource ID"
// @Param        from          query string false "Lower bound"
// @Param        to            query string false "Upper bound"
// @Param        limit         query int    false "Page size (max 100)"
// @Param        offset        query int    false "Offset"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /admin/activity-logs [get]
func (h *AnalyticsHandler) ListActivity(c *gin.Context) {
	from, err := parseBound(c.Query("from"), false)
	if err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}
	to, err := parseBound(c.Query("to"), true)
	if err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	filter := entity.ActivityFilter{
		AdminID:      c.Query("admin_id"),
		Action:       c.Query("action"),
		ResourceType: c.Query("resource_type"),
		ResourceID:   c.Query("resource_id"),
		From:         from,
		To:           to,
		Limit:        limit,
		Offset:       offset,
	}

	logs, total, err := h.analyticsUseCase.ListActivity(c.GetString(middleware.UserIDKey), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	limit, offset = usecase.NormalizePage(filter.Limit, filter.Offset)
	response.OK(c, http.StatusOK, activityPage{Logs: logs, Total: total, Limit: limit, Offset: offset})
}

func parseBound(raw string, endOfDay bool) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}
