package http

import (
	"net/http"
	"strings"

	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/newsletter/internal/entity"
	"dalil/services/newsletter/internal/usecase"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionUseCase usecase.SubscriptionUseCase
}

func NewSubscriptionHandler(subscriptionUseCase usecase.SubscriptionUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionUseCase: subscriptionUseCase}
}

type SubscribeRequest struct {
	Email  string `json:"email" binding:"required"`
	Locale string `json:"locale"`
}

type UnsubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

type subscriberPage struct {
	Subscribers []*entity.Subscriber `json:"subscribers"`
	Total       int64                `json:"total"`
	Limit       int                  `json:"limit"`
	Offset      int                  `json:"offset"`
}

// Subscribe godoc
// @Summary      Subscribe to the newsletter
// @Description  Locale defaults to the request language
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        body body SubscribeRequest true "Subscription"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      409  {object}  response.Result
// @Router       /newsletter/subscribe [post]
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, usecase.ErrInvalidEmail)
		return
	}
	if req.Locale == "" {
		req.Locale = c.GetString(response.LocaleKey)
	}

	subscriber, err := h.subscriptionUseCase.Subscribe(req.Email, req.Locale)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"email": subscriber.Email, "locale": subscriber.Locale})
}

// Unsubscribe godoc
// @Summary      Unsubscribe from the newsletter
// @Description  Accepts a JSON body, or the email query parameter used by campaign links
// @Tags         newsletter
// @Accept       json
// @Produce      json
// @Param        email query string           false "Email (link form)"
// @Param        body  body  UnsubscribeRequest false "Email"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /newsletter/unsubscribe [post]
func (h *SubscriptionHandler) Unsubscribe(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		var req UnsubscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Fail(c, usecase.ErrInvalidEmail)
			return
		}
		email = req.Email
	}

	if err := h.subscriptionUseCase.Unsubscribe(email); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"unsubscribed": true})
}

// ListSubscribers godoc
// @Summary      List subscribers
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        active query bool   false "Active state"
// @Param        q      query string false "Search in email"
// @Param        limit  query int    false "Page size (max 100)"
// @Param        offset query int    false "Offset"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/subscribers [get]
func (h *SubscriptionHandler) ListSubscribers(c *gin.Context) {
	filter := entity.SubscriberFilter{
		Active: queryBool(c, "active"),
		Search: strings.TrimSpace(c.Query("q")),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	}

	items, total, err := h.subscriptionUseCase.ListSubscribers(c.GetString(middleware.UserIDKey), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	limit, offset := usecase.NormalizePage(filter.Limit, filter.Offset)
	response.OK(c, http.StatusOK, subscriberPage{Subscribers: items, Total: total, Limit: limit, Offset: offset})
}

// DeleteSubscriber godoc
// @Summary      Delete subscriber
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Subscriber ID"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /admin/subscribers/{id} [delete]
func (h *SubscriptionHandler) DeleteSubscriber(c *gin.Context) {
	if err := h.subscriptionUseCase.DeleteSubscriber(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
