package main

import (
	"fmt"
	stdlog "log"
	"log/slog"
	"os"

	"github.com/go-mail/mail"

	"github.com/weddinghub/guest-manager/internal/log"
	"github.com/weddinghub/guest-manager/internal/middleware"
	"github.com/weddinghub/guest-manager/internal/server"
	"github.com/weddinghub/guest-manager/pkg/activity"
	"github.com/weddinghub/guest-manager/pkg/config"
	"github.com/weddinghub/guest-manager/pkg/event"
	"github.com/weddinghub/guest-manager/pkg/group"
	"github.com/weddinghub/guest-manager/pkg/grouping"
	"github.com/weddinghub/guest-manager/pkg/guest"
	"github.com/weddinghub/guest-manager/pkg/health"
	"github.com/weddinghub/guest-manager/pkg/rsvp"
	"github.com/weddinghub/guest-manager/pkg/storage"
	"github.com/weddinghub/guest-manager/pkg/token"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	cfg := config.New()

	logger := slog.New(log.New(slog.NewJSONHandler(os.Stdout, nil)))
	slog.SetDefault(logger)

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	broker := activity.NewBroker()

	tokenService := token.NewService(cfg.Session.SecretKey, cfg.Session.ExpirationSeconds)

	groupRepository := group.NewRepository(db)
	groupService := group.NewService(groupRepository, broker)
	groupHandler := group.NewHandler(cfg.Hostname, cfg.SecureCookie, groupService, tokenService)

	guestRepository := guest.NewRepository(db)
	guestService := guest.NewService(guestRepository, broker)
	guestHandler := guest.NewHandler(guestService)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository)
	eventHandler := event.NewHandler(eventService)

	groupingRepository := grouping.NewRepository(db)
	groupingService := grouping.NewService(groupingRepository, groupService)
	groupingHandler := grouping.NewHandler(groupingService)

	// a nil dialer disables RSVP notification mails
	var dialer rsvp.Dialer
	if cfg.SMTP.Host != "" {
		dialer = mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	}

	rsvpRepository := rsvp.NewRepository(db)
	rsvpService := rsvp.NewService(logger, rsvpRepository, broker, dialer, cfg.NotificationEmail)
	rsvpHandler := rsvp.NewHandler(rsvpService)

	activityHandler := activity.NewHandler(logger, broker)
	healthHandler := health.NewHandler(db)

	authMiddleware := middleware.NewAuthentication(tokenService, cfg.Admin.Username, cfg.Admin.Password)

	r, err := server.GetEngine(logger, cfg.BasePath, authMiddleware, healthHandler, guestHandler, groupHandler, eventHandler, groupingHandler, rsvpHandler, activityHandler)
	if err != nil {
		return err
	}
	return r.Run(fmt.Sprintf(":%d", cfg.Port))
}
