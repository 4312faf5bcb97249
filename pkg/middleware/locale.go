package middleware

import (
	"dalil/pkg/i18n"
	"dalil/pkg/response"

	"github.com/gin-gonic/gin"
)

// Locale picks the response language from ?lang= and then Accept-Language.
func Locale() gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := c.Query("lang")
		if !i18n.IsSupported(lang) {
			lang = i18n.DetectLanguage(c.GetHeader("Accept-Language"))
		}
		c.Set(response.LocaleKey, lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}
