package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/internal/handler"
)

func NewAuthentication(sessions sessionService, adminUsername, adminPassword string) AuthenticationMiddleware {
	return AuthenticationMiddleware{
		sessions:      sessions,
		adminUsername: adminUsername,
		adminPassword: adminPassword,
	}
}

type sessionService interface {
	ParseRequest(request *http.Request) (uint, error)
}

type AuthenticationMiddleware struct {
	sessions      sessionService
	adminUsername string
	adminPassword string
}

// TokenAuthentication authenticates the guest-facing routes. The session
// token is a signed statement of the group's id, issued on group sign-in.
func (m AuthenticationMiddleware) TokenAuthentication(c *gin.Context) {
	groupID, err := m.sessions.ParseRequest(c.Request)
	if err != nil {
		_ = c.Error(errdef.NewUnauthorized("session token not valid"))
		c.Abort()
		return
	}

	c.Set(handler.GroupIDContextKey, groupID)
	ctx := handler.NewContextWithGroupID(c.Request.Context(), groupID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

// BasicAuthentication guards the admin panel routes with the configured
// administrator credentials.
func (m AuthenticationMiddleware) BasicAuthentication(c *gin.Context) {
	username, password, ok := c.Request.BasicAuth()
	if !ok {
		m.handleError(c)
		return
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(m.adminUsername)) == 1
	passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(m.adminPassword)) == 1
	if !usernameMatch || !passwordMatch {
		m.handleError(c)
		return
	}

	c.Next()
}

// AnyAuthentication accepts either credential kind on routes both sites
// share: basic auth when the request carries it, a group session otherwise.
func (m AuthenticationMiddleware) AnyAuthentication(c *gin.Context) {
	if _, _, ok := c.Request.BasicAuth(); ok {
		m.BasicAuthentication(c)
		return
	}

	m.TokenAuthentication(c)
}

func (m AuthenticationMiddleware) handleError(c *gin.Context) {
	c.Header("WWW-Authenticate", `Basic realm="admin"`)
	_ = c.Error(errdef.NewUnauthorized("invalid admin credentials"))
	c.Abort()
}
