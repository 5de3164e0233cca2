package guest

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, adminAuthentication gin.HandlerFunc, handler Handler) {
	adminRouter := r.Group("")
	adminRouter.Use(adminAuthentication)

	adminRouter.GET("/guests", handler.FindAll)
	adminRouter.POST("/guests", handler.Create)
	adminRouter.GET("/guests/:id", handler.FindByID)
	adminRouter.PUT("/guests/:id", handler.Update)
	adminRouter.DELETE("/guests/:id", handler.Delete)
}
