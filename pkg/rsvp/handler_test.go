package rsvp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/internal/handler"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := handler.RegisterValidation(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type mockRsvpService struct{ mock.Mock }

func (m *mockRsvpService) SubmitBatch(ctx context.Context, groupID uint, entries []Entry) error {
	return m.Called(ctx, groupID, entries).Error(0)
}

func (m *mockRsvpService) EventSummary(ctx context.Context, slug string) (*Summary, error) {
	called := m.Called(ctx, slug)
	summary, _ := called.Get(0).(*Summary)
	return summary, called.Error(1)
}

func (m *mockRsvpService) GroupResponses(ctx context.Context, groupID uint) ([]GroupResponse, error) {
	called := m.Called(ctx, groupID)
	responses, _ := called.Get(0).([]GroupResponse)
	return responses, called.Error(1)
}

func TestHandler_SubmitBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("SavesBatchForSignedInGroup", func(t *testing.T) {
		service := &mockRsvpService{}
		service.
			On("SubmitBatch", mock.Anything, uint(7), []Entry{
				{GuestID: 1, EventID: "ceremony", Response: model.ResponseYes},
			}).
			Return(nil)
		h := NewHandler(service)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rsvp/batch", strings.NewReader(`{"responses":[{"guestId":1,"eventId":"ceremony","response":"yes"}]}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set(handler.GroupIDContextKey, uint(7))

		h.SubmitBatch(c)

		require.Empty(t, c.Errors)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"success":true`)
		service.AssertExpectations(t)
	})

	t.Run("RequiresSession", func(t *testing.T) {
		h := NewHandler(&mockRsvpService{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rsvp/batch", strings.NewReader(`{"responses":[]}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.SubmitBatch(c)

		require.Len(t, c.Errors, 1)
		assert.True(t, errdef.IsUnauthorized(c.Errors[0].Err))
	})

	t.Run("SurfacesOwnershipViolation", func(t *testing.T) {
		service := &mockRsvpService{}
		service.
			On("SubmitBatch", mock.Anything, uint(7), mock.Anything).
			Return(errdef.NewForbidden("guest 99 doesn't belong to your group"))
		h := NewHandler(service)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/rsvp/batch", strings.NewReader(`{"responses":[{"guestId":99,"eventId":"ceremony","response":"yes"}]}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set(handler.GroupIDContextKey, uint(7))

		h.SubmitBatch(c)

		require.Len(t, c.Errors, 1)
		assert.True(t, errdef.IsForbidden(c.Errors[0].Err))
	})
}

func TestHandler_Responses(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockRsvpService{}
	service.
		On("GroupResponses", mock.Anything, uint(7)).
		Return([]GroupResponse{
			{GuestID: 1, EventID: "ceremony", Response: model.ResponseYes},
		}, nil)
	h := NewHandler(service)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/rsvp/responses", nil)
	c.Set(handler.GroupIDContextKey, uint(7))

	h.Responses(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"eventId":"ceremony"`)
	service.AssertExpectations(t)
}

func TestHandler_EventSummary(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockRsvpService{}
	service.
		On("EventSummary", mock.Anything, "ceremony").
		Return(&Summary{EventID: "ceremony", TotalGuests: 10, Yes: 6, No: 2, NoAnswer: 2, YesPercentage: 60, NoPercentage: 20, NoAnswerPercentage: 20}, nil)
	h := NewHandler(service)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/rsvp/event/ceremony/summary", nil)
	c.Params = gin.Params{{Key: "eventId", Value: "ceremony"}}

	h.EventSummary(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"yesPercentage":60`)
	service.AssertExpectations(t)
}
