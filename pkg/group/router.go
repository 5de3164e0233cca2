package group

import (
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, tokenAuthentication, adminAuthentication gin.HandlerFunc, handler Handler) {
	r.POST("/groups/sign-in", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(tokenAuthentication)
	tokenAuthenticationRouter.GET("/groups/me", handler.Me)

	adminRouter := r.Group("")
	adminRouter.Use(adminAuthentication)
	adminRouter.GET("/groups", handler.FindAll)
	adminRouter.POST("/groups", handler.Create)
	adminRouter.GET("/groups/:id", handler.FindByID)
	adminRouter.PUT("/groups/:id", handler.Update)
	adminRouter.DELETE("/groups/:id", handler.Delete)
	adminRouter.GET("/groups/:id/contact", handler.Contact)
	adminRouter.PUT("/groups/:id/contact", handler.UpdateContact)
}
