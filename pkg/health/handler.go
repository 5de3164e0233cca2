package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/weddinghub/guest-manager/internal/handler"
)

func NewHandler(db *gorm.DB) Handler {
	return Handler{db: db}
}

type Handler struct {
	db *gorm.DB
}

// Health reports liveness and whether the database answers a ping.
func (h Handler) Health(c *gin.Context) {
	status := map[string]string{"status": "up"}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		status["status"] = "down"
		status["database"] = err.Error()
		c.JSON(http.StatusServiceUnavailable, handler.Response{Success: false, Data: status, Message: "database unreachable"})
		return
	}

	handler.Data(c, http.StatusOK, status)
}
