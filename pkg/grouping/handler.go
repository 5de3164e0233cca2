package grouping

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/internal/handler"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func NewHandler(groupingService groupingService) Handler {
	return Handler{
		groupingService: groupingService,
	}
}

type groupingService interface {
	NextSuggestion(ctx context.Context) (*Suggestion, error)
	CreateFromSuggestion(ctx context.Context, name, password string, misc *string, guestIDs []uint) (*WizardResult, error)
	CreateGroup(ctx context.Context, name, password string, misc *string, guestIDs []uint) (*CreatedGroup, error)
	Progress(ctx context.Context) (*Progress, error)
	SearchUngrouped(ctx context.Context, query string, limit int) ([]model.Guest, error)
}

type Handler struct {
	groupingService groupingService
}

type NextSuggestionResponse struct {
	Done       bool        `json:"done"`
	Suggestion *Suggestion `json:"suggestion"`
}

// NextSuggestion computes the next proposed household without persisting
// anything.
func (h Handler) NextSuggestion(c *gin.Context) {
	suggestion, err := h.groupingService.NextSuggestion(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, NextSuggestionResponse{
		Done:       suggestion == nil,
		Suggestion: suggestion,
	})
}

// Progress reports grouping progress for the wizard header.
func (h Handler) Progress(c *gin.Context) {
	progress, err := h.groupingService.Progress(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, progress)
}

// SearchGuests finds ungrouped guests matching the path query.
func (h Handler) SearchGuests(c *gin.Context) {
	limit := 0
	if limitParam := c.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil {
			_ = c.Error(errdef.NewBadRequest("invalid limit parameter: %v", err))
			return
		}
		limit = parsed
	}

	guests, err := h.groupingService.SearchUngrouped(c.Request.Context(), c.Param("query"), limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, guests)
}

type CreateGroupRequest struct {
	Name     string  `json:"name" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Misc     *string `json:"misc"`
	GuestIDs []uint  `json:"guestIds" binding:"required,min=1"`
}

// WizardCreateGroup persists a confirmed suggestion and returns the next one.
func (h Handler) WizardCreateGroup(c *gin.Context) {
	var request CreateGroupRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.groupingService.CreateFromSuggestion(c.Request.Context(), request.Name, request.Password, request.Misc, request.GuestIDs)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusCreated, result)
}

// CreateGroup is the manual grouping path.
func (h Handler) CreateGroup(c *gin.Context) {
	var request CreateGroupRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	created, err := h.groupingService.CreateGroup(c.Request.Context(), request.Name, request.Password, request.Misc, request.GuestIDs)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusCreated, created)
}
