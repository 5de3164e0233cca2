package activity

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, adminAuthentication gin.HandlerFunc, handler Handler) {
	adminRouter := r.Group("/activity")
	adminRouter.Use(adminAuthentication)

	adminRouter.GET("/subscribe", handler.Subscribe)
}
