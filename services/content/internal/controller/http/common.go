package http

import (
	"strconv"

	"dalil/pkg/middleware"

	"github.com/gin-gonic/gin"
)

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

func queryBool(c *gin.Context, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &b
}

// viewerKey identifies a viewer for view dedup: the user id when signed in,
// the client IP otherwise.
func viewerKey(c *gin.Context) string {
	if userID := c.GetString(middleware.UserIDKey); userID != "" {
		return userID
	}
	return c.ClientIP()
}
