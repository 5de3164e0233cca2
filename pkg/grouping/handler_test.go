package grouping

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/pkg/model"
)

type mockGroupingService struct{ mock.Mock }

func (m *mockGroupingService) NextSuggestion(ctx context.Context) (*Suggestion, error) {
	called := m.Called(ctx)
	suggestion, _ := called.Get(0).(*Suggestion)
	return suggestion, called.Error(1)
}

func (m *mockGroupingService) CreateFromSuggestion(ctx context.Context, name, password string, misc *string, guestIDs []uint) (*WizardResult, error) {
	called := m.Called(ctx, name, password, misc, guestIDs)
	result, _ := called.Get(0).(*WizardResult)
	return result, called.Error(1)
}

func (m *mockGroupingService) CreateGroup(ctx context.Context, name, password string, misc *string, guestIDs []uint) (*CreatedGroup, error) {
	called := m.Called(ctx, name, password, misc, guestIDs)
	created, _ := called.Get(0).(*CreatedGroup)
	return created, called.Error(1)
}

func (m *mockGroupingService) Progress(ctx context.Context) (*Progress, error) {
	called := m.Called(ctx)
	progress, _ := called.Get(0).(*Progress)
	return progress, called.Error(1)
}

func (m *mockGroupingService) SearchUngrouped(ctx context.Context, query string, limit int) ([]model.Guest, error) {
	called := m.Called(ctx, query, limit)
	guests, _ := called.Get(0).([]model.Guest)
	return guests, called.Error(1)
}

func TestHandler_NextSuggestion(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("ReturnsSuggestion", func(t *testing.T) {
		service := &mockGroupingService{}
		service.
			On("NextSuggestion", mock.Anything).
			Return(&Suggestion{
				Seed:          &model.Guest{ID: 1, FirstName: "Anna", LastName: "Smith"},
				SuggestedName: "Smith Family",
			}, nil)
		handler := NewHandler(service)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/grouping/next-suggestion", nil)

		handler.NextSuggestion(c)

		require.Empty(t, c.Errors)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"done":false`)
		assert.Contains(t, w.Body.String(), `"suggestedName":"Smith Family"`)
	})

	t.Run("ReportsDoneWhenExhausted", func(t *testing.T) {
		service := &mockGroupingService{}
		service.
			On("NextSuggestion", mock.Anything).
			Return(nil, nil)
		handler := NewHandler(service)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/grouping/next-suggestion", nil)

		handler.NextSuggestion(c)

		require.Empty(t, c.Errors)
		assert.Contains(t, w.Body.String(), `"done":true`)
	})
}

func TestHandler_WizardCreateGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockGroupingService{}
	service.
		On("CreateFromSuggestion", mock.Anything, "Smith Family", "smith123", (*string)(nil), []uint{1, 2}).
		Return(&WizardResult{
			Created: &CreatedGroup{Group: &model.Group{ID: 9, Name: "Smith Family"}, MemberCount: 2},
		}, nil)
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/grouping/wizard-create-group", strings.NewReader(`{"name":"Smith Family","password":"smith123","guestIds":[1,2]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.WizardCreateGroup(c)

	require.Empty(t, c.Errors)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"memberCount":2`)
	service.AssertExpectations(t)
}

func TestHandler_WizardCreateGroup_EmptySelection(t *testing.T) {
	gin.SetMode(gin.TestMode)

	handler := NewHandler(&mockGroupingService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/grouping/wizard-create-group", strings.NewReader(`{"name":"Smith Family","password":"smith123","guestIds":[]}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.WizardCreateGroup(c)

	require.Len(t, c.Errors, 1)
	assert.True(t, errdef.IsBadRequest(c.Errors[0].Err))
}

func TestHandler_SearchGuests(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("PassesQueryAndLimit", func(t *testing.T) {
		service := &mockGroupingService{}
		service.
			On("SearchUngrouped", mock.Anything, "smith", 5).
			Return([]model.Guest{{ID: 1, FirstName: "Anna", LastName: "Smith"}}, nil)
		handler := NewHandler(service)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/grouping/search-guests/smith?limit=5", nil)
		c.Params = gin.Params{{Key: "query", Value: "smith"}}

		handler.SearchGuests(c)

		require.Empty(t, c.Errors)
		assert.Equal(t, http.StatusOK, w.Code)
		service.AssertExpectations(t)
	})

	t.Run("RejectsMalformedLimit", func(t *testing.T) {
		handler := NewHandler(&mockGroupingService{})

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/grouping/search-guests/smith?limit=many", nil)
		c.Params = gin.Params{{Key: "query", Value: "smith"}}

		handler.SearchGuests(c)

		require.Len(t, c.Errors, 1)
		assert.True(t, errdef.IsBadRequest(c.Errors[0].Err))
	})
}

func TestHandler_Progress(t *testing.T) {
	gin.SetMode(gin.TestMode)

	service := &mockGroupingService{}
	service.
		On("Progress", mock.Anything).
		Return(&Progress{TotalGuests: 10, GroupedGuests: 4, RemainingGuests: 6, ProgressPercentage: 40}, nil)
	handler := NewHandler(service)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/grouping/progress", nil)

	handler.Progress(c)

	require.Empty(t, c.Errors)
	assert.Contains(t, w.Body.String(), `"progressPercentage":40`)
}
