// Package log provides slog handlers.
package log

import (
	"context"
	"log/slog"

	"github.com/weddinghub/guest-manager/internal/handler"
)

// ContextHandler adds values from the [context.Context] to the [slog.Record].
// The wrapped [slog.Handler] is passed to the [slog.Logger] used throughout
// the app, so log lines emitted while serving an authenticated guest-site
// request carry the session's group id. Not every use of the logger happens
// within an HTTP request, so missing context keys are fine.
type ContextHandler struct {
	slog.Handler
}

func New(h slog.Handler) *ContextHandler {
	return &ContextHandler{
		Handler: h,
	}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.Handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	// admin routes and public routes have no group session
	if groupID, ok := handler.GroupIDFromContext(ctx); ok {
		r.AddAttrs(slog.Uint64("groupId", uint64(groupID)))
	}

	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return New(h.Handler.WithAttrs(attrs))
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return New(h.Handler.WithGroup(name))
}
