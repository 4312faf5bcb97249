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

type NewsHandler struct {
	newsUseCase usecase.NewsUseCase
}

func NewNewsHandler(newsUseCase usecase.NewsUseCase) *NewsHandler {
	return &NewsHandler{newsUseCase: newsUseCase}
}

type newsPage struct {
	News   []*entity.News `json:"news"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

func newsFilterFromQuery(c *gin.Context) entity.NewsFilter {
	return entity.NewsFilter{
		Label:    c.Query("label"),
		Featured: queryBool(c, "featured"),
		Search:   strings.TrimSpace(c.Query("q")),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}
}

// ListNews godoc
// @Summary      List news
// @Description  Published articles, newest first
// @Tags         news
// @Produce      json
// @Param        label    query string false "Label"
// @Param        featured query bool   false "Featured only"
// @Param        q        query string false "Search in titles"
// @Param        limit    query int    false "Page size (max 100)"
// @Param        offset   query int    false "Offset"
// @Success      200  {object}  response.Result
// @Router       /news [get]
func (h *NewsHandler) ListNews(c *gin.Context) {
	filter := newsFilterFromQuery(c)
	items, total, degraded := h.newsUseCase.ListNews(filter)
	if degraded {
		cache.NoStore(c)
	}
	limit, offset := usecase.NormalizePage(filter.Limit, filter.Offset)

	response.OK(c, http.StatusOK, newsPage{News: items, Total: total, Limit: limit, Offset: offset})
}

// GetNews godoc
// @Summary      Get article
// @Tags         news
// @Produce      json
// @Param        id path string true "News ID"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /news/{id} [get]
func (h *NewsHandler) GetNews(c *gin.Context) {
	news, err := h.newsUseCase.GetNews(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, news)
}

// RecordView godoc
// @Summary      Count a view
// @Tags         news
// @Produce      json
// @Param        id path string true "News ID"
// @Success      200  {object}  response.Result
// @Router       /news/{id}/view [post]
func (h *NewsHandler) RecordView(c *gin.Context) {
	counted, err := h.newsUseCase.RecordView(c.Param("id"), viewerKey(c))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"counted": counted})
}

// AdminListNews godoc
// @Summary      List all news (admin)
// @Description  Drafts included
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        published query bool false "Filter by published state"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/news [get]
func (h *NewsHandler) AdminListNews(c *gin.Context) {
	filter := newsFilterFromQuery(c)
	filter.Published = queryBool(c, "published")
	items, total, err := h.newsUseCase.AdminListNews(c.GetString(middleware.UserIDKey), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	limit, offset := usecase.NormalizePage(filter.Limit, filter.Offset)
	response.OK(c, http.StatusOK, newsPage{News: items, Total: total, Limit: limit, Offset: offset})
}

// AdminGetNews godoc
// @Summary      Get article (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "News ID"
// @Success      200  {object}  response.Result
// @Router       /admin/news/{id} [get]
func (h *NewsHandler) AdminGetNews(c *gin.Context) {
	news, err := h.newsUseCase.AdminGetNews(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, news)
}

// CreateNews godoc
// @Summary      Create article
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body entity.NewsInput true "Article"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /admin/news [post]
func (h *NewsHandler) CreateNews(c *gin.Context) {
	var req entity.NewsInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	news, err := h.newsUseCase.CreateNews(c.GetString(middleware.UserIDKey), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, news)
}

// UpdateNews godoc
// @Summary      Update article
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string            true "News ID"
// @Param        body body entity.NewsUpdate true "Fields to change"
// @Success      200  {object}  response.Result
// @Router       /admin/news/{id} [put]
func (h *NewsHandler) UpdateNews(c *gin.Context) {
	var req entity.NewsUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	news, err := h.newsUseCase.UpdateNews(c.GetString(middleware.UserIDKey), c.Param("id"), req)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, news)
}

// DeleteNews godoc
// @Summary      Delete article
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "News ID"
// @Success      200  {object}  response.Result
// @Router       /admin/news/{id} [delete]
func (h *NewsHandler) DeleteNews(c *gin.Context) {
	if err := h.newsUseCase.DeleteNews(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// TogglePublish godoc
// @Summary      Publish or unpublish article
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "News ID"
// @Success      200  {object}  response.Result
// @Router       /admin/news/{id}/publish [patch]
func (h *NewsHandler) TogglePublish(c *gin.Context) {
	news, err := h.newsUseCase.TogglePublish(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, news)
}

// ToggleFeature godoc
// @Summary      Feature or unfeature article
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "News ID"
// @Success      200  {object}  response.Result
// @Router       /admin/news/{id}/feature [patch]
func (h *NewsHandler) ToggleFeature(c *gin.Context) {
	news, err := h.newsUseCase.ToggleFeature(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, news)
}
