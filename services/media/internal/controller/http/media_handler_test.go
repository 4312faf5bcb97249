package http

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"dalil/pkg/apperr"
	"dalil/pkg/logger"
	"dalil/pkg/media"
	"dalil/pkg/middleware"
	"dalil/pkg/response"
	"dalil/services/media/internal/entity"
	"dalil/services/media/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockMediaUseCase struct {
	mock.Mock
}

func (m *MockMediaUseCase) Upload(adminID, bucket string, tags []string, files []media.Candidate) ([]entity.UploadResult, error) {
	args := m.Called(adminID, bucket, tags, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.UploadResult), args.Error(1)
}

func (m *MockMediaUseCase) ListMedia(adminID string, filter entity.MediaFilter) ([]*entity.MediaFile, int64, error) {
	args := m.Called(adminID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*entity.MediaFile), args.Get(1).(int64), args.Error(2)
}

func (m *MockMediaUseCase) GetMedia(adminID, id string) (*entity.MediaFile, error) {
	args := m.Called(adminID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MediaFile), args.Error(1)
}

func (m *MockMediaUseCase) UpdateTags(adminID, id string, tags []string) (*entity.MediaFile, error) {
	args := m.Called(adminID, id, tags)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.MediaFile), args.Error(1)
}

func (m *MockMediaUseCase) DeleteMedia(adminID, id string) error {
	args := m.Called(adminID, id)
	return args.Error(0)
}

var _ usecase.MediaUseCase = (*MockMediaUseCase)(nil)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func asAdmin(locale string, h gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, "admin-1")
		c.Set(response.LocaleKey, locale)
		h(c)
	}
}

func multipartBody(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for name, contentType := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		part, err := writer.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("content of " + name))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUpload_ReportsEachFileLocalized(t *testing.T) {
	mockUseCase := new(MockMediaUseCase)
	handler := NewMediaHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/admin/media", asAdmin("en", handler.Upload))

	mockUseCase.On("Upload", "admin-1", media.BucketNewsImages, []string{"hero", " launch"}, mock.MatchedBy(func(files []media.Candidate) bool {
		return len(files) == 1 && files[0].Name == "a.png" && files[0].DeclaredType == "image/png"
	})).Return([]entity.UploadResult{
		{Name: "a.png", File: &entity.MediaFile{ID: "m-1"}},
		{Name: "b.txt", Err: media.ErrTypeNotAllowed},
	}, nil)

	body, contentType := multipartBody(t, map[string]string{"bucket": media.BucketNewsImages, "tags": "hero, launch"}, map[string]string{"a.png": "image/png"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Success bool           `json:"success"`
		Data    UploadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Data.Uploaded)
	assert.Equal(t, 1, result.Data.Failed)
	assert.True(t, result.Data.Results[0].Success)
	assert.Equal(t, "m-1", result.Data.Results[0].File.ID)
	assert.False(t, result.Data.Results[1].Success)
	assert.Equal(t, "media.typeNotAllowed", result.Data.Results[1].Code)
	assert.Equal(t, "File type not allowed", result.Data.Results[1].Error)
}

func TestUpload_UnreadablePartIsReportedPerFile(t *testing.T) {
	mockUseCase := new(MockMediaUseCase)
	handler := NewMediaHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/admin/media", func(c *gin.Context) {
		form, err := c.MultipartForm()
		require.NoError(t, err)
		// no content and no temp file, so Open fails
		form.File["files"] = append(form.File["files"], &multipart.FileHeader{Filename: "broken.png"})
		c.Next()
	}, asAdmin("ar", handler.Upload))

	mockUseCase.On("Upload", "admin-1", media.BucketNewsImages, []string(nil), mock.MatchedBy(func(files []media.Candidate) bool {
		return len(files) == 2 &&
			files[0].Name == "a.png" && files[0].ReadErr == nil &&
			files[1].Name == "broken.png" && files[1].ReadErr != nil
	})).Return([]entity.UploadResult{
		{Name: "a.png", File: &entity.MediaFile{ID: "m-1"}},
		{Name: "broken.png", Err: media.ErrUnreadable},
	}, nil)

	body, contentType := multipartBody(t, map[string]string{"bucket": media.BucketNewsImages}, map[string]string{"a.png": "image/png"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var result struct {
		Success bool           `json:"success"`
		Data    UploadResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Data.Uploaded)
	assert.Equal(t, 1, result.Data.Failed)
	assert.Equal(t, "media.unreadable", result.Data.Results[1].Code)
	assert.Equal(t, "تعذرت قراءة الملف", result.Data.Results[1].Error)
	mockUseCase.AssertExpectations(t)
}

func TestUpload_RequestErrorFailsWhole(t *testing.T) {
	mockUseCase := new(MockMediaUseCase)
	handler := NewMediaHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/admin/media", asAdmin("en", handler.Upload))

	mockUseCase.On("Upload", "admin-1", "nope", []string(nil), mock.Anything).Return(nil, media.ErrUnknownBucket)

	body, contentType := multipartBody(t, map[string]string{"bucket": "nope"}, map[string]string{"a.png": "image/png"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/media", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "media.unknownBucket")
}

func TestUpload_NotMultipart(t *testing.T) {
	mockUseCase := new(MockMediaUseCase)
	handler := NewMediaHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/admin/media", asAdmin("ar", handler.Upload))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/admin/media", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "media.noFiles")
	mockUseCase.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestListMedia_Filters(t *testing.T) {
	mockUseCase := new(MockMediaUseCase)
	handler := NewMediaHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.GET("/admin/media", asAdmin("ar", handler.ListMedia))

	mockUseCase.On("ListMedia", "admin-1", entity.MediaFilter{Bucket: media.BucketSiteAssets, Tag: "logo"}).
		Return([]*entity.MediaFile{{ID: "m-1"}}, int64(1), nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/media?bucket=site-assets&tag=LOGO", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":50`)
	mockUseCase.AssertExpectations(t)
}

func TestUpdateTags_BadJSON(t *testing.T) {
	mockUseCase := new(MockMediaUseCase)
	handler := NewMediaHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.PUT("/admin/media/:id/tags", asAdmin("ar", handler.UpdateTags))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/admin/media/m-1/tags", bytes.NewBufferString(`{"tags":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMedia_Forbidden(t *testing.T) {
	mockUseCase := new(MockMediaUseCase)
	handler := NewMediaHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.DELETE("/admin/media/:id", asAdmin("ar", handler.DeleteMedia))

	mockUseCase.On("DeleteMedia", "admin-1", "m-1").Return(apperr.ErrForbidden)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("DELETE", "/admin/media/m-1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListBuckets(t *testing.T) {
	handler := NewMediaHandler(new(MockMediaUseCase), logger.New())

	router := setupTestRouter()
	router.GET("/admin/media/buckets", handler.ListBuckets)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin/media/buckets", nil)
	router.ServeHTTP(w, req)

	var result struct {
		Data []BucketInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Data, 4)
	assert.Equal(t, media.BucketProductLogos, result.Data[0].Name)
	assert.Equal(t, int64(2<<20), result.Data[0].MaxSize)
}
