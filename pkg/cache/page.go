package cache

import (
	"bytes"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

const noStoreKey = "cache.noStore"

// NoStore keeps PageCache from storing the response being written. Handlers
// call it when they answered with a fallback instead of store data.
func NoStore(c *gin.Context) {
	c.Set(noStoreKey, true)
	c.Header("Cache-Control", "no-store")
}

// PageKey is the cache key of a public GET response.
func PageKey(path, rawQuery, locale string) string {
	key := pagePrefix + path
	if rawQuery != "" {
		key += "?" + rawQuery
	}
	return key + "#" + locale
}

// PageCache caches successful anonymous GET responses until their path is
// revalidated or PAGE_CACHE_TTL passes.
func PageCache(s *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() || c.Request.Method != http.MethodGet || c.GetHeader("Authorization") != "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := PageKey(c.Request.URL.Path, c.Request.URL.RawQuery, c.GetString("locale"))

		if cached, err := s.client.Get(ctx, key).Bytes(); err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		writer := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Header("X-Cache", "MISS")
		c.Next()

		if writer.Status() == http.StatusOK && writer.body.Len() > 0 && !c.GetBool(noStoreKey) {
			if err := s.client.Set(ctx, key, writer.body.Bytes(), s.pageTTL).Err(); err != nil {
				s.logger.Warn("Failed to cache page %s: %v", key, err)
			}
		}
	}
}
