package http

import (
	"encoding/json"
	"net/http"

	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/analytics/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsUseCase usecase.SettingsUseCase
}

func NewSettingsHandler(settingsUseCase usecase.SettingsUseCase) *SettingsHandler {
	return &SettingsHandler{settingsUseCase: settingsUseCase}
}

type UpsertSettingRequest struct {
	Value json.RawMessage `json:"value" swaggertype:"object"`
}

// ListSettings godoc
// @Summary      List site settings
// @Tags         settings
// @Produce      json
// @Success      200  {object}  response.Result
// @Router       /settings [get]
func (h *SettingsHandler) ListSettings(c *gin.Context) {
	settings, err := h.settingsUseCase.ListSettings()
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, settings)
}

// GetSetting godoc
// @Summary      Get site setting
// @Tags         settings
// @Produce      json
// @Param        key path string true "Setting key"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /settings/{key} [get]
func (h *SettingsHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsUseCase.GetSetting(c.Param("key"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, setting)
}

// UpsertSetting godoc
// @Summary      Create or replace a site setting
// @Description  Any JSON value is accepted
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        key  path string               true "Setting key"
// @Param        body body UpsertSettingRequest true "Value"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /admin/settings/{key} [put]
func (h *SettingsHandler) UpsertSetting(c *gin.Context) {
	var req UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, usecase.ErrInvalidSettingValue)
		return
	}

	setting, err := h.settingsUseCase.UpsertSetting(c.GetString(middleware.UserIDKey), c.Param("key"), req.Value)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, setting)
}
