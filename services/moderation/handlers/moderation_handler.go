package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"dalil/pkg/apperr"
	"dalil/pkg/audit"
	"dalil/pkg/authz"
	"dalil/pkg/cache"
	"dalil/pkg/logger"
	"dalil/pkg/middleware"
	"dalil/pkg/models"
	"dalil/pkg/response"
	"dalil/services/moderation/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultQueueSize = 50
	maxQueueSize     = 100
)

var (
	ErrProductNotFound = apperr.New(apperr.KindNotFound, "product.notFound")
	ErrInvalidStatus   = apperr.New(apperr.KindValidation, "product.invalidStatus")
)

type ModerationHandler struct {
	moderationRepo repository.ModerationRepository
	gate           authz.Gate
	recorder       audit.Recorder
	revalidator    cache.Revalidator
	logger         *logger.Logger
}

func NewModerationHandler(
	moderationRepo repository.ModerationRepository,
	gate authz.Gate,
	recorder audit.Recorder,
	revalidator cache.Revalidator,
	logger *logger.Logger,
) *ModerationHandler {
	return &ModerationHandler{
		moderationRepo: moderationRepo,
		gate:           gate,
		recorder:       recorder,
		revalidator:    revalidator,
		logger:         logger,
	}
}

type ReviewRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Reason string `json:"reason"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// ReviewProduct godoc
// @Summary      Approve or reject a tool
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string        true "Product ID"
// @Param        body       body ReviewRequest true "Decision"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /moderation/review/{product_id} [post]
func (h *ModerationHandler) ReviewProduct(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}
	h.moderate(c, models.ProductStatus(req.Status), req.Reason)
}

// GetPendingProducts godoc
// @Summary      Moderation queue
// @Description  Pending tools, oldest first
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query int false "Page size"
// @Param        offset query int false "Offset"
// @Success      200  {object}  response.Result
// @Router       /moderation/pending [get]
func (h *ModerationHandler) GetPendingProducts(c *gin.Context) {
	if err := h.gate.RequireAdmin(c.GetString(middleware.UserIDKey)); err != nil {
		response.Fail(c, err)
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	if limit <= 0 {
		limit = defaultQueueSize
	}
	if limit > maxQueueSize {
		limit = maxQueueSize
	}
	if offset < 0 {
		offset = 0
	}

	products, total, err := h.moderationRepo.GetPendingProducts(limit, offset)
	if err != nil {
		h.logger.Error("Failed to get pending products: %v", err)
		response.Fail(c, apperr.Internal(err))
		return
	}

	response.OK(c, http.StatusOK, gin.H{"products": products, "total": total, "limit": limit, "offset": offset})
}

// GetQueueStats godoc
// @Summary      Tool counts per status
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result
// @Router       /moderation/stats [get]
func (h *ModerationHandler) GetQueueStats(c *gin.Context) {
	if err := h.gate.RequireAdmin(c.GetString(middleware.UserIDKey)); err != nil {
		response.Fail(c, err)
		return
	}

	counts, err := h.moderationRepo.CountByStatus()
	if err != nil {
		h.logger.Error("Failed to count products: %v", err)
		response.Fail(c, apperr.Internal(err))
		return
	}
	response.OK(c, http.StatusOK, counts)
}

// ApproveProduct godoc
// @Summary      Approve a tool
// @Tags         moderation
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string true "Product ID"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /moderation/approve/{product_id} [post]
func (h *ModerationHandler) ApproveProduct(c *gin.Context) {
	h.moderate(c, models.StatusApproved, "")
}

// RejectProduct godoc
// @Summary      Reject a tool
// @Tags         moderation
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        product_id path string        true  "Product ID"
// @Param        body       body RejectRequest false "Reason shown to the submitter"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /moderation/reject/{product_id} [post]
func (h *ModerationHandler) RejectProduct(c *gin.Context) {
	var req RejectRequest
	// the body is optional
	_ = c.ShouldBindJSON(&req)
	h.moderate(c, models.StatusRejected, req.Reason)
}

func (h *ModerationHandler) moderate(c *gin.Context, status models.ProductStatus, reason string) {
	adminID := c.GetString(middleware.UserIDKey)
	productID := c.Param("product_id")

	if err := h.gate.RequireAdmin(adminID); err != nil {
		response.Fail(c, err)
		return
	}

	product, err := h.moderationRepo.GetProductByID(productID)
	if err != nil {
		response.Fail(c, storeErr(err))
		return
	}
	if product.Status == status {
		response.Fail(c, ErrInvalidStatus)
		return
	}

	reason = strings.TrimSpace(reason)
	if status == models.StatusApproved {
		reason = ""
	}
	if err := h.moderationRepo.UpdateProductStatus(productID, status, reason); err != nil {
		h.logger.Error("Failed to update product %s status: %v", productID, err)
		response.Fail(c, storeErr(err))
		return
	}

	action := audit.ActionApprove
	if status == models.StatusRejected {
		action = audit.ActionReject
	}
	details := map[string]interface{}{"from": product.Status, "to": status, "name": product.Name}
	if reason != "" {
		details["reason"] = reason
	}
	h.recorder.Record(audit.Entry{
		AdminID:      adminID,
		Action:       action,
		ResourceType: audit.ResourceProduct,
		ResourceID:   productID,
		Details:      details,
	})

	// approval changes the public list, the detail page and the facets
	h.revalidator.RevalidatePath(cache.PathProducts, cache.PathFacets)
	h.revalidator.RevalidateTag(cache.TagFacets)

	h.logger.WithField("product_id", productID).Info("Product %s by %s", status, adminID)
	response.OK(c, http.StatusOK, gin.H{"product_id": productID, "status": status})
}

func storeErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProductNotFound
	}
	return apperr.Internal(err)
}
