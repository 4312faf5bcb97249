// Package response writes the uniform action result used by every service:
//
//	{"success": true,  "data": ...}
//	{"success": false, "error": "<localized message>", "code": "<message key>"}
package response

import (
	"net/http"

	"dalil/pkg/apperr"
	"dalil/pkg/i18n"

	"github.com/gin-gonic/gin"
)

// LocaleKey is the gin context key set by middleware.Locale.
const LocaleKey = "locale"

type Result struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func OK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Result{Success: true, Data: data})
}

// Fail localizes err for the caller and picks the status from its kind.
func Fail(c *gin.Context, err error) {
	key := apperr.KeyOf(err)
	c.JSON(StatusOf(err), Result{
		Success: false,
		Error:   Localizer(c).T(key),
		Code:    key,
	})
}

// AbortFail is Fail for middleware.
func AbortFail(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}

// Localizer returns the localizer for the request language.
func Localizer(c *gin.Context) *i18n.Localizer {
	return i18n.NewLocalizer(c.GetString(LocaleKey))
}

func StatusOf(err error) int {
	switch apperr.KindOf(err) {
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
