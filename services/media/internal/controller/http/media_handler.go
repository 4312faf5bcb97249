package http

import (
	"net/http"
	"strconv"
	"strings"

	"dalil/pkg/apperr"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/media/internal/entity"
	"dalil/services/media/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	mediaUseCase usecase.MediaUseCase
	logger       *logger.Logger
}

func NewMediaHandler(mediaUseCase usecase.MediaUseCase, logger *logger.Logger) *MediaHandler {
	return &MediaHandler{
		mediaUseCase: mediaUseCase,
		logger:       logger,
	}
}

// UploadItem is one file of an upload response.
type UploadItem struct {
	Name    string            `json:"name"`
	Success bool              `json:"success"`
	File    *entity.MediaFile `json:"file,omitempty"`
	Error   string            `json:"error,omitempty"`
	Code    string            `json:"code,omitempty"`
}

type UploadResponse struct {
	Results  []UploadItem `json:"results"`
	Uploaded int          `json:"uploaded"`
	Failed   int          `json:"failed"`
}

type TagsRequest struct {
	Tags []string `json:"tags"`
}

type BucketInfo struct {
	Name         string   `json:"name"`
	MaxSize      int64    `json:"max_size"`
	AllowedTypes []string `json:"allowed_types"`
}

type mediaPage struct {
	Files  []*entity.MediaFile `json:"files"`
	Total  int64               `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strings.Split(raw, ",")
}

// Upload godoc
// @Summary      Upload media
// @Description  Uploads up to 20 files into one bucket. Each file reports its own result.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        bucket formData string true  "Bucket"
// @Param        tags   formData string false "Comma separated tags"
// @Param        files  formData file   true  "Files"
// @Success      200  {object}  response.Result
// @Failure      400  {object}  response.Result
// @Failure      403  {object}  response.Result
// @Router       /admin/media [post]
func (h *MediaHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.Fail(c, media.ErrNoFiles)
		return
	}

	headers := form.File["files"]
	files := make([]media.Candidate, 0, len(headers))
	for _, fh := range headers {
		candidate, err := media.FromFileHeader(fh)
		if err != nil {
			h.logger.Warn("Failed to read upload part %s: %v", fh.Filename, err)
			candidate = media.Candidate{Name: fh.Filename, ReadErr: err}
		}
		files = append(files, candidate)
	}

	results, err := h.mediaUseCase.Upload(
		c.GetString(middleware.UserIDKey),
		c.PostForm("bucket"),
		splitTags(c.PostForm("tags")),
		files,
	)
	if err != nil {
		response.Fail(c, err)
		return
	}

	localizer := response.Localizer(c)
	resp := UploadResponse{Results: make([]UploadItem, len(results))}
	for i, r := range results {
		item := UploadItem{Name: r.Name, Success: r.OK(), File: r.File}
		if r.OK() {
			resp.Uploaded++
		} else {
			resp.Failed++
			item.Code = apperr.KeyOf(r.Err)
			item.Error = localizer.T(item.Code)
		}
		resp.Results[i] = item
	}
	response.OK(c, http.StatusOK, resp)
}

// ListMedia godoc
// @Summary      List media
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        bucket    query string false "Bucket"
// @Param        mime_type query string false "MIME type"
// @Param        tag       query string false "Tag"
// @Param        q         query string false "Search in file names"
// @Param        limit     query int    false "Page size (max 100)"
// @Param        offset    query int    false "Offset"
// @Success      200  {object}  response.Result
// @Router       /admin/media [get]
func (h *MediaHandler) ListMedia(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	filter := entity.MediaFilter{
		Bucket:   c.Query("bucket"),
		MimeType: c.Query("mime_type"),
		Tag:      strings.ToLower(c.Query("tag")),
		Search:   strings.TrimSpace(c.Query("q")),
		Limit:    limit,
		Offset:   offset,
	}

	files, total, err := h.mediaUseCase.ListMedia(c.GetString(middleware.UserIDKey), filter)
	if err != nil {
		response.Fail(c, err)
		return
	}
	limit, offset = usecase.NormalizePage(limit, offset)
	response.OK(c, http.StatusOK, mediaPage{Files: files, Total: total, Limit: limit, Offset: offset})
}

// GetMedia godoc
// @Summary      Get media file
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Media ID"
// @Success      200  {object}  response.Result
// @Failure      404  {object}  response.Result
// @Router       /admin/media/{id} [get]
func (h *MediaHandler) GetMedia(c *gin.Context) {
	file, err := h.mediaUseCase.GetMedia(c.GetString(middleware.UserIDKey), c.Param("id"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, file)
}

// UpdateTags godoc
// @Summary      Replace media tags
// @Tags         media
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string      true "Media ID"
// @Param        body body TagsRequest true "Tags"
// @Success      200  {object}  response.Result
// @Router       /admin/media/{id}/tags [put]
func (h *MediaHandler) UpdateTags(c *gin.Context) {
	var req TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, apperr.ErrInvalidInput)
		return
	}

	file, err := h.mediaUseCase.UpdateTags(c.GetString(middleware.UserIDKey), c.Param("id"), req.Tags)
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, file)
}

// DeleteMedia godoc
// @Summary      Delete media file
// @Description  Removes the stored object and its metadata
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Media ID"
// @Success      200  {object}  response.Result
// @Router       /admin/media/{id} [delete]
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	if err := h.mediaUseCase.DeleteMedia(c.GetString(middleware.UserIDKey), c.Param("id")); err != nil {
		response.Fail(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"id": c.Param("id")})
}

// ListBuckets godoc
// @Summary      Upload buckets
// @Description  Bucket names with their size limit and allowed types
// @Tags         media
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Result
// @Router       /admin/media/buckets [get]
func (h *MediaHandler) ListBuckets(c *gin.Context) {
	buckets := make([]BucketInfo, 0, len(media.Buckets()))
	for _, name := range media.Buckets() {
		policy, _ := media.PolicyFor(name)
		buckets = append(buckets, BucketInfo{Name: name, MaxSize: policy.MaxSize, AllowedTypes: policy.AllowedTypes})
	}
	response.OK(c, http.StatusOK, buckets)
}
