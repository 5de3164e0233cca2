package guest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/internal/handler"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func NewHandler(guestService guestService) Handler {
	return Handler{
		guestService: guestService,
	}
}

type guestService interface {
	Create(ctx context.Context, details Details) (*model.Guest, error)
	Update(ctx context.Context, id uint, details Details) (*model.Guest, error)
	FindByID(ctx context.Context, id uint) (*model.Guest, error)
	FindAll(ctx context.Context, filter Filter) ([]model.Guest, error)
	Delete(ctx context.Context, id uint) error
}

type Handler struct {
	guestService guestService
}

type GuestRequest struct {
	FirstName         string  `json:"firstName" binding:"required"`
	LastName          string  `json:"lastName" binding:"required"`
	Source            string  `json:"source" binding:"required"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Address           *string `json:"address"`
	Misc              *string `json:"misc"`
	PreferredLanguage *string `json:"preferredLanguage"`
	GroupID           *uint   `json:"groupId"`
	PlusOneOf         *uint   `json:"plusOneOf"`
}

func (r GuestRequest) details() Details {
	return Details{
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Source:            r.Source,
		Phone:             r.Phone,
		Email:             r.Email,
		Address:           r.Address,
		Misc:              r.Misc,
		PreferredLanguage: r.PreferredLanguage,
		GroupID:           r.GroupID,
		PlusOneOf:         r.PlusOneOf,
	}
}

// Create guest
func (h Handler) Create(c *gin.Context) {
	var request GuestRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	guest, err := h.guestService.Create(c.Request.Context(), request.details())
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusCreated, guest)
}

// FindAll guests, optionally filtered with ?ungrouped=true or ?groupId=N
func (h Handler) FindAll(c *gin.Context) {
	var filter Filter

	if ungroupedParam := c.Query("ungrouped"); ungroupedParam != "" {
		ungrouped, err := strconv.ParseBool(ungroupedParam)
		if err != nil {
			_ = c.Error(errdef.NewBadRequest("invalid ungrouped parameter: %v", err))
			return
		}
		filter.Ungrouped = ungrouped
	}

	if groupIDParam := c.Query("groupId"); groupIDParam != "" {
		groupID, err := strconv.ParseUint(groupIDParam, 10, 32)
		if err != nil {
			_ = c.Error(errdef.NewBadRequest("invalid groupId parameter: %v", err))
			return
		}
		id := uint(groupID)
		filter.GroupID = &id
	}

	guests, err := h.guestService.FindAll(c.Request.Context(), filter)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, guests)
}

// FindByID guest
func (h Handler) FindByID(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	guest, err := h.guestService.FindByID(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, guest)
}

// Update guest, full-replace semantics
func (h Handler) Update(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request GuestRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	guest, err := h.guestService.Update(c.Request.Context(), id, request.details())
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, guest)
}

// Delete guest
func (h Handler) Delete(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	err := h.guestService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
