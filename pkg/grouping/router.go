package grouping

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, adminAuthentication gin.HandlerFunc, handler Handler) {
	adminRouter := r.Group("/grouping")
	adminRouter.Use(adminAuthentication)

	adminRouter.GET("/next-suggestion", handler.NextSuggestion)
	adminRouter.GET("/progress", handler.Progress)
	adminRouter.GET("/search-guests/:query", handler.SearchGuests)
	adminRouter.POST("/wizard-create-group", handler.WizardCreateGroup)
	adminRouter.POST("/create-group", handler.CreateGroup)
}
