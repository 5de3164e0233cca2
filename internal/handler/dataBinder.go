package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/errdef"
)

// DataBinder binds the JSON request body onto req, translating content-type
// and binding failures into errdef errors the error handler middleware knows
// how to report.
func DataBinder(c *gin.Context, req any) error {
	if c.ContentType() != "application/json" {
		reason := fmt.Sprintf("%s only accepts content of type application/json", c.FullPath())
		return errdef.NewUnsupportedMediaType("%s", reason)
	}

	if err := c.ShouldBind(req); err != nil {
		return errdef.NewBadRequest("error binding data: %v", err)
	}

	return nil
}
