package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/pkg/response"
)

// UserIDHeader identifies the caller. It is trusted as-is.
const UserIDHeader = "X-Sharer-User-Id"

const userIDKey = "user_id"

// RequireUserID rejects requests without a numeric X-Sharer-User-Id header.
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			response.BadRequest(c, "missing "+UserIDHeader+" header")
			c.Abort()
			return
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.BadRequest(c, "invalid "+UserIDHeader+" header: "+raw)
			c.Abort()
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

// GetUserID returns the caller id stored by RequireUserID.
func GetUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
