package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/errdef"
)

// GetPathParameter parses a numeric path parameter. On failure it records a
// bad request error on the context and returns false.
func GetPathParameter(c *gin.Context, parameter string) (uint, bool) {
	idParam := c.Param(parameter)
	id, err := strconv.ParseUint(idParam, 10, 32)
	if err != nil {
		_ = c.Error(errdef.NewBadRequest("error parsing %q: %v", parameter, err))
		c.Abort()
		return 0, false
	}
	return uint(id), true
}
