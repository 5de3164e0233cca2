package server

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"

	"github.com/weddinghub/guest-manager/internal/handler"
	"github.com/weddinghub/guest-manager/internal/middleware"
	"github.com/weddinghub/guest-manager/pkg/activity"
	"github.com/weddinghub/guest-manager/pkg/event"
	"github.com/weddinghub/guest-manager/pkg/group"
	"github.com/weddinghub/guest-manager/pkg/grouping"
	"github.com/weddinghub/guest-manager/pkg/guest"
	"github.com/weddinghub/guest-manager/pkg/health"
	"github.com/weddinghub/guest-manager/pkg/rsvp"
)

func GetEngine(logger *slog.Logger, basePath string, authMiddleware middleware.AuthenticationMiddleware, healthHandler health.Handler, guestHandler guest.Handler, groupHandler group.Handler, eventHandler event.Handler, groupingHandler grouping.Handler, rsvpHandler rsvp.Handler, activityHandler activity.Handler) (*gin.Engine, error) {
	err := handler.RegisterValidation()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sloggin.New(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	router.GET("/health", healthHandler.Health)

	guest.Routes(router, authMiddleware.BasicAuthentication, guestHandler)
	group.Routes(router, authMiddleware.TokenAuthentication, authMiddleware.BasicAuthentication, groupHandler)
	event.Routes(router, authMiddleware.AnyAuthentication, authMiddleware.BasicAuthentication, eventHandler)
	grouping.Routes(router, authMiddleware.BasicAuthentication, groupingHandler)
	rsvp.Routes(router, authMiddleware.TokenAuthentication, authMiddleware.BasicAuthentication, rsvpHandler)
	activity.Routes(router, authMiddleware.BasicAuthentication, activityHandler)

	return r, nil
}
