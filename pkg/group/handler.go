package group

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/handler"
	"github.com/weddinghub/guest-manager/pkg/model"
	"github.com/weddinghub/guest-manager/pkg/token"
)

// NewHandler creates the group handler. secureCookie marks the session
// cookie https-only and is turned off for plain http local development.
func NewHandler(hostname string, secureCookie bool, groupService groupService, tokenService tokenService) Handler {
	return Handler{
		hostname:     hostname,
		secureCookie: secureCookie,
		groupService: groupService,
		tokenService: tokenService,
	}
}

type groupService interface {
	Create(ctx context.Context, name, password string, misc *string) (*model.Group, error)
	Update(ctx context.Context, id uint, name, password string, misc *string) (*model.Group, error)
	FindByID(ctx context.Context, id uint) (*model.Group, error)
	FindWithGuests(ctx context.Context, id uint) (*model.Group, error)
	FindAll(ctx context.Context) ([]model.Group, error)
	Delete(ctx context.Context, id uint) error
	SignIn(ctx context.Context, name, password string) (*model.Group, error)
	Contact(ctx context.Context, id uint) (*ContactInfo, error)
	UpdateContact(ctx context.Context, id uint, phone, email, address *string) (*ContactInfo, error)
}

type tokenService interface {
	GenerateSessionToken(group *model.Group) (*token.Session, error)
}

type Handler struct {
	hostname     string
	secureCookie bool
	groupService groupService
	tokenService tokenService
}

type SignInRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn exchanges the group's shared credential for a session token. The
// token is returned in the envelope and set as an http-only cookie for the
// guest site.
func (h Handler) SignIn(c *gin.Context) {
	var request SignInRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	group, err := h.groupService.SignIn(c.Request.Context(), request.Name, request.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	session, err := h.tokenService.GenerateSessionToken(group)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(token.SessionCookieName, session.Token, int(session.ExpiresIn), "/", h.hostname, h.secureCookie, true)

	handler.Data(c, http.StatusOK, session)
}

// Me returns the signed-in group with its members, as the RSVP form needs
// the member list.
func (h Handler) Me(c *gin.Context) {
	groupID, err := handler.GetGroupID(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	group, err := h.groupService.FindWithGuests(c.Request.Context(), groupID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, group)
}

type CreateGroupRequest struct {
	Name string `json:"name" binding:"required"`
	// Password is optional on create; when omitted it is derived from the
	// name (lowercased, non a-z runes stripped).
	Password string  `json:"password"`
	Misc     *string `json:"misc"`
}

// Create group
func (h Handler) Create(c *gin.Context) {
	var request CreateGroupRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), request.Name, request.Password, request.Misc)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusCreated, group)
}

// FindAll groups with their members
func (h Handler) FindAll(c *gin.Context) {
	groups, err := h.groupService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, groups)
}

// FindByID group
func (h Handler) FindByID(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	group, err := h.groupService.FindWithGuests(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, group)
}

type UpdateGroupRequest struct {
	Name     string  `json:"name" binding:"required"`
	Password string  `json:"password" binding:"required"`
	Misc     *string `json:"misc"`
}

// Update group, full-replace semantics
func (h Handler) Update(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdateGroupRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	group, err := h.groupService.Update(c.Request.Context(), id, request.Name, request.Password, request.Misc)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, group)
}

// Delete group, detaching its members first
func (h Handler) Delete(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	err := h.groupService.Delete(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Contact returns the group's contact info, read off its principal guest.
func (h Handler) Contact(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	contact, err := h.groupService.Contact(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, contact)
}

type ContactRequest struct {
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// UpdateContact mutates the principal guest's contact fields.
func (h Handler) UpdateContact(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request ContactRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	contact, err := h.groupService.UpdateContact(c.Request.Context(), id, request.Phone, request.Email, request.Address)
	if err != nil {
		_ = c.Error(err)
		return
	}

	handler.Data(c, http.StatusOK, contact)
}
