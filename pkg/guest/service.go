package guest

import (
	"context"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/pkg/activity"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func NewService(guestRepository guestRepository, publisher activityPublisher) *Service {
	return &Service{
		repository: guestRepository,
		publisher:  publisher,
	}
}

type activityPublisher interface {
	Publish(event activity.Event)
}

type guestRepository interface {
	create(ctx context.Context, guest *model.Guest) error
	save(ctx context.Context, guest *model.Guest) error
	findByID(ctx context.Context, id uint) (*model.Guest, error)
	findAll(ctx context.Context, filter Filter) ([]model.Guest, error)
	findPlusOne(ctx context.Context, mainID uint) (*model.Guest, error)
	delete(ctx context.Context, id uint) error
}

type Service struct {
	repository guestRepository
	publisher  activityPublisher
}

// Details carries the full set of writable guest fields. Create and Update
// both persist the complete record; a nil optional field is stored as null,
// never left unchanged.
type Details struct {
	FirstName         string
	LastName          string
	Source            string
	Phone             *string
	Email             *string
	Address           *string
	Misc              *string
	PreferredLanguage *string
	GroupID           *uint
	PlusOneOf         *uint
}

func (s Service) Create(ctx context.Context, details Details) (*model.Guest, error) {
	if err := s.validatePlusOneLink(ctx, 0, details.PlusOneOf); err != nil {
		return nil, err
	}

	guest := &model.Guest{
		FirstName:         details.FirstName,
		LastName:          details.LastName,
		Source:            details.Source,
		Phone:             details.Phone,
		Email:             details.Email,
		Address:           details.Address,
		Misc:              details.Misc,
		PreferredLanguage: details.PreferredLanguage,
		GroupID:           details.GroupID,
		PlusOneOf:         details.PlusOneOf,
	}

	err := s.repository.create(ctx, guest)
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(activity.Event{Type: activity.TypeGuestCreated, Message: guest.FullName()})
	return guest, nil
}

// Update applies full-replace semantics: every writable field is overwritten
// with the given details, including omitted contact fields.
func (s Service) Update(ctx context.Context, id uint, details Details) (*model.Guest, error) {
	guest, err := s.repository.findByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validatePlusOneLink(ctx, id, details.PlusOneOf); err != nil {
		return nil, err
	}

	guest.FirstName = details.FirstName
	guest.LastName = details.LastName
	guest.Source = details.Source
	guest.Phone = details.Phone
	guest.Email = details.Email
	guest.Address = details.Address
	guest.Misc = details.Misc
	guest.PreferredLanguage = details.PreferredLanguage
	guest.GroupID = details.GroupID
	guest.PlusOneOf = details.PlusOneOf

	err = s.repository.save(ctx, guest)
	if err != nil {
		return nil, err
	}

	return guest, nil
}

// validatePlusOneLink enforces that a +1 is never itself given a +1. The
// schema doesn't constrain this; the check lives here.
func (s Service) validatePlusOneLink(ctx context.Context, id uint, plusOneOf *uint) error {
	if plusOneOf == nil {
		return nil
	}

	if *plusOneOf == id {
		return errdef.NewBadRequest("a guest can't be their own +1")
	}

	main, err := s.repository.findByID(ctx, *plusOneOf)
	if err != nil {
		if errdef.IsNotFound(err) {
			return errdef.NewBadRequest("main guest %d doesn't exist", *plusOneOf)
		}
		return err
	}

	if main.IsPlusOne() {
		return errdef.NewBadRequest("guest %d is already a +1 and can't have a +1 of their own", main.ID)
	}

	if id != 0 {
		_, err := s.repository.findPlusOne(ctx, id)
		if err == nil {
			return errdef.NewBadRequest("guest %d has a +1 and can't become a +1 themselves", id)
		}
		if !errdef.IsNotFound(err) {
			return err
		}
	}

	return nil
}

func (s Service) FindByID(ctx context.Context, id uint) (*model.Guest, error) {
	return s.repository.findByID(ctx, id)
}

func (s Service) FindAll(ctx context.Context, filter Filter) ([]model.Guest, error) {
	return s.repository.findAll(ctx, filter)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	guest, err := s.repository.findByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.repository.delete(ctx, id)
	if err != nil {
		return err
	}

	s.publisher.Publish(activity.Event{Type: activity.TypeGuestDeleted, Message: guest.FullName()})
	return nil
}
