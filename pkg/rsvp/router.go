package rsvp

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, tokenAuthentication, adminAuthentication gin.HandlerFunc, handler Handler) {
	groupRouter := r.Group("/rsvp")
	groupRouter.Use(tokenAuthentication)
	groupRouter.POST("/batch", handler.SubmitBatch)
	groupRouter.GET("/responses", handler.Responses)

	adminRouter := r.Group("/rsvp")
	adminRouter.Use(adminAuthentication)
	adminRouter.GET("/event/:eventId/summary", handler.EventSummary)
}
