package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/internal/handler"
)

// ErrorHandler translates errors recorded on the Gin context into the
// response envelope. Unexpected errors are reported with a generic message
// carrying the request id; the detail only appears in the server log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		err := c.Errors.Last()
		if err == nil {
			return
		}
		if c.Writer.Written() {
			return
		}

		switch {
		case errdef.IsBadRequest(err):
			handler.Message(c, http.StatusBadRequest, err.Error())
		case errdef.IsUnauthorized(err):
			handler.Message(c, http.StatusUnauthorized, err.Error())
		case errdef.IsForbidden(err):
			handler.Message(c, http.StatusForbidden, err.Error())
		case errdef.IsNotFound(err):
			handler.Message(c, http.StatusNotFound, err.Error())
		case errdef.IsDuplicated(err):
			handler.Message(c, http.StatusConflict, err.Error())
		case errdef.IsUnsupportedMediaType(err):
			handler.Message(c, http.StatusUnsupportedMediaType, err.Error())
		default:
			id := sloggin.GetRequestID(c)
			message := fmt.Sprintf("something went wrong. We'll look into it if you send us the id %q", id)
			handler.Message(c, http.StatusInternalServerError, message)
		}
	}
}
