package http

import (
	"net/http"
	"strings"

	"dalil/pkg/apperr"
	"dalil/pkg/cache"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/content/internal/entity"
	"dalil/services/content/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TutorialHandler struct {
	tutorialUseCase usecase.TutorialUseCase
}

func NewTutorialHandler(tutorialUseCase usecase.TutorialUseCase) *TutorialHandler {
	return &TutorialHandler{tutorialUseCase: tutorialUseCase}
}

type tutorialPage struct {
	Tutorials []*entity.Tutorial `json:"tutorials"`
	Total     int64              `json:"total"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}

// ListTutorials godoc
// @Summary      List tutorials
// @Tags         tutorials
// @Produce      json
// @Param        category   query string false "Category"
// @Param        difficulty query string false "beginner, intermediate or advanced"
// @Param        tag        query string false "Tag"
// @Param        q          query string false "Search in titles"
// @Param        limit      query int    false "Page size (max 100)"
// @Param        offset     query int    false "Offset"
// @Success      200  {object}  response.Result
// @Router       /tutorials [get]
func (h *TutorialHandler) ListTutorials(c *gin.Context) {
	filter := entity.TutorialFilter{
		Category:   c.Query("category"),
		Difficulty: entity.Difficulty(c.Query("difficulty")),
		Tag:        strings.ToLower(c.Query("tag")),
		Search:     strings.TrimSpace(c.Query("q")),
		Limit:      queryInt(c, "limit"),
		Offset:     queryInt(c, "offset"),
	}
	tutorials, total, degraded := h.tutorialUseCase.ListTutorials(filter)
	if degraded {
		cache.NoStore(c)
	}
	limit, offset := usecase.NormalizePage(filter.Limit, filter.Offset)

	response.OK(c, http.StatusOK, tutorialPage{Tutorials: tutorials, Total: total, Limit: limit, Offset: offset})
}

// GetTutorial godoc
// @Summary      Get tutorial
// @Tags         tutorials
// @Produce      json
// @Param        id path string true "Tutorial ID"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /tutorials/{id} [get]
func (h *TutorialHandler) GetTutorial(c *gin.Context) {
	tutorial, err := h.tutorialUseCase.GetTutorial(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, tutorial)
}

// RecordView godoc
// @Summary      Count a view
// @Tags         tutorials
// @Produce      json
// @Param        id path string true "Tutorial ID"
// @Success      200  {object}  response.Result
// @Router       /tutorials/{id}/view [post]
func (h *TutorialHandler) RecordView(c *gin.Context) {
	counted, err := h.tutorialUseCase.RecordView(c.Param("id"), viewerKey(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"counted": counted})
}

// CreateTutorial godoc
// @Summary      Create tutorial
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body entity.TutorialInput true "Tutorial"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /admin/tutorials [post]
func (h *TutorialHandler) CreateTutorial(c *gin.Context) {
	var req entity.TutorialInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	tutorial, err := h.tutorialUseCase.CreateTutorial(c.GetString(middleware.UserIDKey), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, tutorial)
}

// UpdateTutorial godoc
// @Summary      Update tutorial
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                true "Tutorial ID"
// @Param        body body entity.TutorialUpdate true "Fields to change"
// @Success      200  {object}  response.Result
// @Router       /admin/tutorials/{id} [put]
func (h *TutorialHandler) UpdateTutorial(c *gin.Context) {
	var req entity.TutorialUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	tutorial, err := h.tutorialUseCase.UpdateTutorial(c.GetString(middleware.UserIDKey), c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, tutorial)
}

// DeleteTutorial godoc
// @Summary      Delete tutorial
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Tutorial ID"
// @Success      200  {object}  response.Result
// @Router       /admin/tutorials/{id} [delete]
func (h *TutorialHandler) DeleteTutorial(c *gin.Context) {
	if err := h.tutorialUseCase.DeleteTutorial(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
