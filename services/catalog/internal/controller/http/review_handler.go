package http

import (
	"net/http"
	"strconv"

	"dalil/pkg/apperr"
	"dalil/pkg/cache"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewUseCase usecase.ReviewUseCase
}

func NewReviewHandler(reviewUseCase usecase.ReviewUseCase) *ReviewHandler {
	return &ReviewHandler{reviewUseCase: reviewUseCase}
}

type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type AnonymousReviewRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ListReviews godoc
// @Summary      Tool reviews
// @Description  Signed-in and anonymous reviews, newest first
// @Tags         reviews
// @Produce      json
// @Param        id     path  string true  "Product ID"
// @Param        limit  query int    false "Page size"
// @Param        offset query int    false "Offset"
// @Success      200  {object}  response.Result
// @Router       /products/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, degraded := h.reviewUseCase.ListReviews(c.Param("id"), queryInt(c, "limit"), queryInt(c, "offset"))
	if degraded {
		cache.NoStore(c)
	}
	response.OK(c, http.StatusOK, reviews)
}

// CreateReview godoc
// @Summary      Review a tool
// @Description  One review per user and tool
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string        true "Product ID"
// @Param        body body ReviewRequest true "Rating 1-5 and comment"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /products/{id}/reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	review, err := h.reviewUseCase.CreateReview(c.GetString(middleware.UserIDKey), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, review)
}

// CreateAnonymousReview godoc
// @Summary      Review a tool without an account
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id   path string                 true "Product ID"
// @Param        body body AnonymousReviewRequest true "Reviewer and rating"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Router       /products/{id}/reviews/anonymous [post]
func (h *ReviewHandler) CreateAnonymousReview(c *gin.Context) {
	var req AnonymousReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	review, err := h.reviewUseCase.CreateAnonymousReview(c.Param("id"), req.Name, req.Email, req.Rating, req.Comment)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, review)
}

// UpdateReview godoc
// @Summary      Edit own review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string        true "Review ID"
// @Param        body body ReviewRequest true "Rating and comment"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /reviews/{id} [put]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	review, err := h.reviewUseCase.UpdateReview(c.GetString(middleware.UserIDKey), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, review)
}

// DeleteReview godoc
// @Summary      Delete own review
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Review ID"
// @Success      200  {object}  response.Result
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	if err := h.reviewUseCase.DeleteReview(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// AdminDeleteReview godoc
// @Summary      Delete any review
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  string true  "Review ID"
// @Param        anonymous query bool   false "Review comes from the anonymous table"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/reviews/{id} [delete]
func (h *ReviewHandler) AdminDeleteReview(c *gin.Context) {
	anonymous, _ := strconv.ParseBool(c.Query("anonymous"))

	if err := h.reviewUseCase.AdminDeleteReview(c.GetString(middleware.UserIDKey), c.Param("id"), anonymous); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
