package rsvp

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/handler"
)

func NewHandler(rsvpService rsvpService) Handler {
	return Handler{
		rsvpService: rsvpService,
	}
}

type rsvpService interface {
	SubmitBatch(ctx context.Context, groupID uint, entries []Entry) error
	EventSummary(ctx context.Context, slug string) (*Summary, error)
	GroupResponses(ctx context.Context, groupID uint) ([]GroupResponse, error)
}

type Handler struct {
	rsvpService rsvpService
}

type BatchRequest struct {
	Responses []Entry `json:"responses" binding:"required,dive"`
}

// SubmitBatch stores the authenticated group's answers. All-or-nothing; a
// single bad entry rejects the whole batch.
func (h Handler) SubmitBatch(c *gin.Context) {
	groupID, err := handler.GetGroupID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	var request BatchRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	err = h.rsvpService.SubmitBatch(c.Request.Context(), groupID, request.Responses)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, "responses saved")
}

// Responses returns the authenticated group's saved answers.
func (h Handler) Responses(c *gin.Context) {
	groupID, err := handler.GetGroupID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	responses, err := h.rsvpService.GroupResponses(c.Request.Context(), groupID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, responses)
}

// EventSummary reports the attendance breakdown of one event.
func (h Handler) EventSummary(c *gin.Context) {
	summary, err := h.rsvpService.EventSummary(c.Request.Context(), c.Param("eventId"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, summary)
}
