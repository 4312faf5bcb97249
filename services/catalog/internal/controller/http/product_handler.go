package http

import (
	"net/http"
	"strconv"
	"strings"

	"dalil/pkg/apperr"
	"dalil/pkg/cache"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/catalog/internal/entity"
	"dalil/services/catalog/internal/usecase"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	productUseCase usecase.ProductUseCase
	logger         *logger.Logger
}

func NewProductHandler(productUseCase usecase.ProductUseCase, logger *logger.Logger) *ProductHandler {
	return &ProductHandler{
		productUseCase: productUseCase,
		logger:         logger,
	}
}

type productPage struct {
	Products []*entity.Product `json:"products"`
	Total    int64             `json:"total"`
	Limit    int               `json:"limit"`
	Offset   int               `json:"offset"`
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func filterFromQuery(c *gin.Context) entity.ProductFilter {
	filter := entity.ProductFilter{
		Category: c.Query("category"),
		Label:    c.Query("label"),
		Tag:      strings.ToLower(c.Query("tag")),
		Search:   strings.TrimSpace(c.Query("q")),
		Sort:     c.Query("sort"),
		Limit:    queryInt(c, "limit"),
		Offset:   queryInt(c, "offset"),
	}
	if raw := c.Query("featured"); raw != "" {
		if featured, err := strconv.ParseBool(raw); err == nil {
			filter.Featured = &featured
		}
	}
	return filter
}

// ListProducts godoc
// @Summary      List tools
// @Description  Approved tools with filters, sorting and pagination
// @Tags         products
// @Produce      json
// @Param        category query string false "Category"
// @Param        label    query string false "Pricing label"
// @Param        tag      query string false "Tag"
// @Param        q        query string false "Search in names and descriptions"
// @Param        featured query bool   false "Featured only"
// @Param        sort     query string false "newest, popular or name"
// @Param        limit    query int    false "Page size (max 100)"
// @Param        offset   query int    false "Offset"
// @Success      200  {object}  response.Result
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := filterFromQuery(c)
	products, total, degraded := h.productUseCase.ListProducts(filter)
	if degraded {
		cache.NoStore(c)
	}
	limit, offset := usecase.NormalizePage(filter.Limit, filter.Offset)

	response.OK(c, http.StatusOK, productPage{Products: products, Total: total, Limit: limit, Offset: offset})
}

// GetProduct godoc
// @Summary      Get tool
// @Description  Approved tool with its rating summary
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productUseCase.GetProduct(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	if product.RatingUnavailable {
		cache.NoStore(c)
	}
	response.OK(c, http.StatusOK, product)
}

// RecordView godoc
// @Summary      Count a view
// @Description  Counts at most one view per viewer and tool per day
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200  {object}  response.Result
// @Router       /products/{id}/view [post]
func (h *ProductHandler) RecordView(c *gin.Context) {
	viewer := c.GetString(middleware.UserIDKey)
	if viewer == "" {
		viewer = c.ClientIP()
	}

	counted, err := h.productUseCase.RecordView(c.Param("id"), viewer)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"counted": counted})
}

// GetFacets godoc
// @Summary      Filter values
// @Description  Distinct categories, labels and tags of approved tools
// @Tags         products
// @Produce      json
// @Success      200  {object}  response.Result
// @Router       /facets [get]
func (h *ProductHandler) GetFacets(c *gin.Context) {
	facets, err := h.productUseCase.GetFacets()
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, facets)
}

// GetRating godoc
// @Summary      Tool rating
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200  {object}  response.Result
// @Router       /products/{id}/rating [get]
func (h *ProductHandler) GetRating(c *gin.Context) {
	rating, err := h.productUseCase.GetRating(c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, rating)
}

type SubmitProductRequest struct {
	Name          string `form:"name"`
	NameAr        string `form:"name_ar"`
	Description   string `form:"description"`
	DescriptionAr string `form:"description_ar"`
	Category      string `form:"category"`
	Label         string `form:"label"`
	Tags          string `form:"tags"`
	WebsiteURL    string `form:"website_url"`
}

// SubmitProduct godoc
// @Summary      Submit a tool
// @Description  Creates a pending tool. The optional logo goes to the product-logos bucket.
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        name        formData string true  "Name"
// @Param        description formData string false "Description"
// @Param        category    formData string false "Category"
// @Param        tags        formData string false "Comma separated tags"
// @Param        website_url formData string false "Website"
// @Param        logo        formData file   false "Logo image"
// @Success      201  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      401  {object}  response.Result
// @Router       /products [post]
func (h *ProductHandler) SubmitProduct(c *gin.Context) {
	var req SubmitProductRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	var logo *media.Candidate
	if fh, err := c.FormFile("logo"); err == nil {
		candidate, err := media.FromFileHeader(fh)
		if err != nil {
			h.logger.Error("Failed to read logo: %v", err)
			response.Fail(c, apperr.ErrInvalidInput)
			return
		}
		logo = &candidate
	}

	product, err := h.productUseCase.SubmitProduct(c.GetString(middleware.UserIDKey), entity.SubmitProductInput{
		Name:          req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Category:      req.Category,
		Label:         req.Label,
		Tags:          strings.Split(req.Tags, ","),
		WebsiteURL:    req.WebsiteURL,
	}, logo)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusCreated, product)
}

// AdminListProducts godoc
// @Summary      List tools (admin)
// @Description  Every tool regardless of status
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "pending, approved or rejected"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/products [get]
func (h *ProductHandler) AdminListProducts(c *gin.Context) {
	filter := filterFromQuery(c)
	filter.Status = entity.ProductStatus(c.Query("status"))

	products, total, err := h.productUseCase.AdminListProducts(c.GetString(middleware.UserIDKey), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	limit, offset := usecase.NormalizePage(filter.Limit, filter.Offset)
	response.OK(c, http.StatusOK, productPage{Products: products, Total: total, Limit: limit, Offset: offset})
}

type UpdateProductRequest struct {
	Name          *string   `json:"name"`
	NameAr        *string   `json:"name_ar"`
	Description   *string   `json:"description"`
	DescriptionAr *string   `json:"description_ar"`
	Category      *string   `json:"category"`
	Label         *string   `json:"label"`
	Tags          *[]string `json:"tags"`
	WebsiteURL    *string   `json:"website_url"`
	LogoURL       *string   `json:"logo_url"`
	IsFeatured    *bool     `json:"is_featured"`
}

// UpdateProduct godoc
// @Summary      Edit a tool
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Product ID"
// @Param        body body UpdateProductRequest true "Fields to change"
// @Success      200  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /admin/products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	product, err := h.productUseCase.UpdateProduct(c.GetString(middleware.UserIDKey), c.Param("id"), entity.ProductUpdate{
		Name:          req.Name,
		NameAr:        req.NameAr,
		Description:   req.Description,
		DescriptionAr: req.DescriptionAr,
		Category:      req.Category,
		Label:         req.Label,
		Tags:          req.Tags,
		WebsiteURL:    req.WebsiteURL,
		LogoURL:       req.LogoURL,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, product)
}

type FeatureRequest struct {
	Featured bool `json:"featured"`
}

// SetFeatured godoc
// @Summary      Feature or unfeature a tool
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Product ID"
// @Param        body body FeatureRequest true "Featured flag"
// @Success      200  {object}  response.Result
// @Router       /admin/products/{id}/featured [patch]
func (h *ProductHandler) SetFeatured(c *gin.Context) {
	var req FeatureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	product, err := h.productUseCase.SetFeatured(c.GetString(middleware.UserIDKey), c.Param("id"), req.Featured)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, product)
}

// DeleteProduct godoc
// @Summary      Delete a tool
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product ID"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /admin/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.productUseCase.DeleteProduct(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}
