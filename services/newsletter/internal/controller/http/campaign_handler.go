package http

import (
	"net/http"
	"time"

	"dalil/pkg/apperr"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/usecase"

	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignUseCase usecase.CampaignUseCase
}

func NewCampaignHandler(campaignUseCase usecase.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{campaignUseCase: campaignUseCase}
}

type ScheduleRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required"`
}

type campaignPage struct {
	Campaigns []*entity.Campaign `json:"campaigns"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ListCampaigns godoc
// @Summary      List campaigns
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "draft, scheduled, sending, sent or cancelled"
// @Param        limit  query int    false "Page size (max 100)"
// @Param        offset query int    false "Offset"
// @Success      200  {object}  response.Result
// @Router       /admin/campaigns [get]
func (h *CampaignHandler) ListCampaigns(c *gin.Context) {
	filter := entity.CampaignFilter{
		Status: entity.CampaignStatus(c.Query("status")),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}

	items, total, err := h.campaignUseCase.ListCampaigns(c.GetString(middleware.UserIDKey), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	limit, offset := usecase.NormalizePage(filter.Limit, filter.Offset)
	response.OK(c, http.StatusOK, campaignPage{Campaigns: items, Total: total, Limit: limit, Offset: offset})
}

// GetCampaign godoc
// @Summary      Get campaign
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /admin/campaigns/{id} [get]
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignUseCase.GetCampaign(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, campaign)
}

// CreateCampaign godoc
// @Summary      Create campaign draft
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body entity.CampaignInput true "Campaign"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /admin/campaigns [post]
func (h *CampaignHandler) CreateCampaign(c *gin.Context) {
	var req entity.CampaignInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	campaign, err := h.campaignUseCase.CreateCampaign(c.GetString(middleware.UserIDKey), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, campaign)
}

// UpdateCampaign godoc
// @Summary      Update campaign
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "Campaign ID"
// @Param        body body entity.CampaignUpdate true "Fields to change"
// @Success      200  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /admin/campaigns/{id} [put]
func (h *CampaignHandler) UpdateCampaign(c *gin.Context) {
	var req entity.CampaignUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	campaign, err := h.campaignUseCase.UpdateCampaign(c.GetString(middleware.UserIDKey), c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, campaign)
}

// ScheduleCampaign godoc
// @Summary      Schedule campaign
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string          true "Campaign ID"
// @Param        body body ScheduleRequest true "RFC 3339 time in the future"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /admin/campaigns/{id}/schedule [post]
func (h *CampaignHandler) ScheduleCampaign(c *gin.Context) {
	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	campaign, err := h.campaignUseCase.ScheduleCampaign(c.GetString(middleware.UserIDKey), c.Param("id"), req.ScheduledAt)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, campaign)
}

// UnscheduleCampaign godoc
// @Summary      Return a scheduled campaign to draft
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /admin/campaigns/{id}/unschedule [post]
func (h *CampaignHandler) UnscheduleCampaign(c *gin.Context) {
	campaign, err := h.campaignUseCase.UnscheduleCampaign(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, campaign)
}

// CancelCampaign godoc
// @Summary      Cancel campaign
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /admin/campaigns/{id}/cancel [post]
func (h *CampaignHandler) CancelCampaign(c *gin.Context) {
	campaign, err := h.campaignUseCase.CancelCampaign(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, campaign)
}

// DeleteCampaign godoc
// @Summary      Delete campaign
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /admin/campaigns/{id} [delete]
func (h *CampaignHandler) DeleteCampaign(c *gin.Context) {
	if err := h.campaignUseCase.DeleteCampaign(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// SendCampaign godoc
// @Summary      Send campaign
// @Description  Drafts only. Returns 202 with the campaign in "sending" when delivery is queued.
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Campaign ID"
// @Success      200  {object}  response.Result
// @Success      202  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /admin/campaigns/{id}/send [post]
func (h *CampaignHandler) SendCampaign(c *gin.Context) {
	campaign, err := h.campaignUseCase.SendCampaign(c.Request.Context(), c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	status := http.StatusOK
	if campaign.Status == entity.CampaignSending {
		status = http.StatusAccepted
	}
	response.OK(c, status, campaign)
}
