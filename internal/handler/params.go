package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shareit-hub/service-shareit/pkg/middleware"
	"github.com/shareit-hub/service-shareit/pkg/response"
)

// parseIDParam reads a positive numeric path parameter. On failure it writes a 400 and returns false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "invalid "+name+": "+c.Param(name))
		return 0, false
	}
	return id, true
}

// callerID returns the X-Sharer-User-Id stored by middleware.RequireUserID.
func callerID(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "missing "+middleware.UserIDHeader+" header")
		return 0, false
	}
	return id, true
}
