package event

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, anyAuthentication, adminAuthentication gin.HandlerFunc, handler Handler) {
	// the guest site lists events for the RSVP form, the admin panel for
	// management
	listRouter := r.Group("")
	listRouter.Use(anyAuthentication)
	listRouter.GET("/events", handler.FindAll)

	adminRouter := r.Group("")
	adminRouter.Use(adminAuthentication)
	adminRouter.POST("/events", handler.Create)
	adminRouter.GET("/events/:eventId", handler.FindBySlug)
	adminRouter.PUT("/events/:eventId", handler.Update)
	adminRouter.DELETE("/events/:eventId", handler.Delete)
}
