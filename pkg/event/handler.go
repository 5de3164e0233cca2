package event

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/handler"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func NewHandler(eventService eventService) Handler {
	return Handler{
		eventService: eventService,
	}
}

type eventService interface {
	Create(ctx context.Context, details Details) (*model.Event, error)
	Update(ctx context.Context, slug string, details Details) (*model.Event, error)
	FindBySlug(ctx context.Context, slug string) (*model.Event, error)
	FindAll(ctx context.Context) ([]model.Event, error)
	Delete(ctx context.Context, slug string) error
}

type Handler struct {
	eventService eventService
}

type EventRequest struct {
	EventID     string  `json:"eventId"`
	Name        string  `json:"name" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Description *string `json:"description"`
}

// Create event. The event id is validated before any store write and derived
// from the name when omitted.
func (h Handler) Create(c *gin.Context) {
	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), Details{
		Slug:        request.EventID,
		Name:        request.Name,
		Date:        request.Date,
		Description: request.Description,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusCreated, event)
}

// FindAll events
func (h Handler) FindAll(c *gin.Context) {
	events, err := h.eventService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, events)
}

// FindBySlug event
func (h Handler) FindBySlug(c *gin.Context) {
	event, err := h.eventService.FindBySlug(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, event)
}

// Update event, full-replace semantics
func (h Handler) Update(c *gin.Context) {
	var request EventRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), c.Param("eventId"), Details{
		Slug:        request.EventID,
		Name:        request.Name,
		Date:        request.Date,
		Description: request.Description,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, event)
}

// Delete event and its attendance rows
func (h Handler) Delete(c *gin.Context) {
	err := h.eventService.Delete(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
