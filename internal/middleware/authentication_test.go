package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weddinghub/guest-manager/internal/handler"
)

type stubSessionService struct {
	groupID uint
	err     error
}

func (s stubSessionService) ParseRequest(*http.Request) (uint, error) {
	return s.groupID, s.err
}

func TestTokenAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("SetsGroupIDOnContext", func(t *testing.T) {
		auth := NewAuthentication(stubSessionService{groupID: 5}, "admin", "secret")

		var groupID uint
		r := gin.New()
		r.Use(ErrorHandler())
		r.Use(auth.TokenAuthentication)
		r.GET("/", func(c *gin.Context) {
			id, err := handler.GetGroupID(c)
			require.NoError(t, err)
			groupID = id
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, uint(5), groupID)
	})

	t.Run("RejectsInvalidToken", func(t *testing.T) {
		auth := NewAuthentication(stubSessionService{err: errors.New("expired")}, "admin", "secret")

		r := gin.New()
		r.Use(ErrorHandler())
		r.Use(auth.TokenAuthentication)
		r.GET("/", func(c *gin.Context) {
			t.Fatal("handler should not run")
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	})
}

func TestAnyAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(sessions stubSessionService) *gin.Engine {
		auth := NewAuthentication(sessions, "admin", "secret")
		r := gin.New()
		r.Use(ErrorHandler())
		r.Use(auth.AnyAuthentication)
		r.GET("/", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("AcceptsAdminCredentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "secret")
		newRouter(stubSessionService{err: errors.New("no session")}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("AcceptsGroupSession", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		newRouter(stubSessionService{groupID: 5}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("RejectsNeither", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		newRouter(stubSessionService{err: errors.New("no session")}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBasicAuthentication(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func() *gin.Engine {
		auth := NewAuthentication(stubSessionService{}, "admin", "secret")
		r := gin.New()
		r.Use(ErrorHandler())
		r.Use(auth.BasicAuthentication)
		r.GET("/", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("AcceptsConfiguredCredentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "secret")
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("RejectsWrongPassword", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.SetBasicAuth("admin", "wrong")
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("RejectsMissingHeader", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		newRouter().ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, `Basic realm="admin"`, w.Header().Get("WWW-Authenticate"))
	})
}
