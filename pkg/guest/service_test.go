package guest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/pkg/activity"
	"github.com/weddinghub/guest-manager/pkg/model"
)

type mockRepository struct{ mock.Mock }

func (m *mockRepository) create(ctx context.Context, guest *model.Guest) error {
	return m.Called(ctx, guest).Error(0)
}

func (m *mockRepository) save(ctx context.Context, guest *model.Guest) error {
	return m.Called(ctx, guest).Error(0)
}

func (m *mockRepository) findByID(ctx context.Context, id uint) (*model.Guest, error) {
	called := m.Called(ctx, id)
	guest, _ := called.Get(0).(*model.Guest)
	return guest, called.Error(1)
}

func (m *mockRepository) findAll(ctx context.Context, filter Filter) ([]model.Guest, error) {
	called := m.Called(ctx, filter)
	guests, _ := called.Get(0).([]model.Guest)
	return guests, called.Error(1)
}

func (m *mockRepository) findPlusOne(ctx context.Context, mainID uint) (*model.Guest, error) {
	called := m.Called(ctx, mainID)
	guest, _ := called.Get(0).(*model.Guest)
	return guest, called.Error(1)
}

func (m *mockRepository) delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("PersistsFullContactRecord", func(t *testing.T) {
		repository := &mockRepository{}
		repository.
			On("create", ctx, mock.AnythingOfType("*model.Guest")).
			Return(nil)
		service := NewService(repository, activity.NewBroker())

		guest, err := service.Create(ctx, Details{FirstName: "Anna", LastName: "Smith", Source: "Bride's Family"})

		require.NoError(t, err)
		assert.Equal(t, "Anna", guest.FirstName)
		assert.Nil(t, guest.Phone)
		assert.Nil(t, guest.Email)
		assert.Nil(t, guest.Address)
		assert.Nil(t, guest.Misc)
		repository.AssertExpectations(t)
	})

	t.Run("RejectsPlusOneOfAPlusOne", func(t *testing.T) {
		mainID := uint(2)
		plusOne := &model.Guest{ID: 2, PlusOneOf: &mainID}
		repository := &mockRepository{}
		repository.
			On("findByID", ctx, uint(2)).
			Return(plusOne, nil)
		service := NewService(repository, activity.NewBroker())

		link := uint(2)
		_, err := service.Create(ctx, Details{FirstName: "Ben", LastName: "Smith", Source: "x", PlusOneOf: &link})

		assert.True(t, errdef.IsBadRequest(err))
		repository.AssertNotCalled(t, "create", mock.Anything, mock.Anything)
	})

	t.Run("RejectsUnknownMainGuest", func(t *testing.T) {
		repository := &mockRepository{}
		repository.
			On("findByID", ctx, uint(99)).
			Return(nil, errdef.NewNotFound("guest 99 doesn't exist"))
		service := NewService(repository, activity.NewBroker())

		link := uint(99)
		_, err := service.Create(ctx, Details{FirstName: "Ben", LastName: "Smith", Source: "x", PlusOneOf: &link})

		assert.True(t, errdef.IsBadRequest(err))
	})
}

func TestService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("FullReplaceClearsOmittedContactFields", func(t *testing.T) {
		phone := "+4512345678"
		existing := &model.Guest{ID: 1, FirstName: "Anna", LastName: "Smith", Source: "Bride's Family", Phone: &phone}
		repository := &mockRepository{}
		repository.
			On("findByID", ctx, uint(1)).
			Return(existing, nil)
		repository.
			On("save", ctx, mock.MatchedBy(func(g *model.Guest) bool {
				return g.ID == 1 && g.Phone == nil && g.FirstName == "Anne"
			})).
			Return(nil)
		service := NewService(repository, activity.NewBroker())

		guest, err := service.Update(ctx, 1, Details{FirstName: "Anne", LastName: "Smith", Source: "Bride's Family"})

		require.NoError(t, err)
		assert.Nil(t, guest.Phone)
		repository.AssertExpectations(t)
	})

	t.Run("RejectsSelfReference", func(t *testing.T) {
		existing := &model.Guest{ID: 1, FirstName: "Anna", LastName: "Smith"}
		repository := &mockRepository{}
		repository.
			On("findByID", ctx, uint(1)).
			Return(existing, nil)
		service := NewService(repository, activity.NewBroker())

		link := uint(1)
		_, err := service.Update(ctx, 1, Details{FirstName: "Anna", LastName: "Smith", Source: "x", PlusOneOf: &link})

		assert.True(t, errdef.IsBadRequest(err))
	})

	t.Run("RejectsMainWithOwnPlusOneBecomingPlusOne", func(t *testing.T) {
		existing := &model.Guest{ID: 1, FirstName: "Anna", LastName: "Smith"}
		main := &model.Guest{ID: 3, FirstName: "Carl", LastName: "Jones"}
		mainID := uint(1)
		dependent := &model.Guest{ID: 2, PlusOneOf: &mainID}
		repository := &mockRepository{}
		repository.
			On("findByID", ctx, uint(1)).
			Return(existing, nil)
		repository.
			On("findByID", ctx, uint(3)).
			Return(main, nil)
		repository.
			On("findPlusOne", ctx, uint(1)).
			Return(dependent, nil)
		service := NewService(repository, activity.NewBroker())

		link := uint(3)
		_, err := service.Update(ctx, 1, Details{FirstName: "Anna", LastName: "Smith", Source: "x", PlusOneOf: &link})

		assert.True(t, errdef.IsBadRequest(err))
	})
}
