package middleware

import (
	"dalil/pkg/authz"
	"dalil/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminOnly must run after AuthMiddleware. The role is read from the store,
// not from the token, so a demoted admin loses access immediately.
func AdminOnly(gate authz.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := gate.RequireAdmin(c.GetString(UserIDKey)); err != nil {
			response.AbortFail(c, err)
			return
		}
		c.Next()
	}
}
