package event

import (
	"context"
	"time"

	gosimpleslug "github.com/gosimple/slug"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/internal/handler"
	"github.com/weddinghub/guest-manager/pkg/model"
)

func NewService(eventRepository eventRepository) *Service {
	return &Service{
		repository: eventRepository,
	}
}

type eventRepository interface {
	create(ctx context.Context, event *model.Event) error
	save(ctx context.Context, event *model.Event) error
	findBySlug(ctx context.Context, slug string) (*model.Event, error)
	findAll(ctx context.Context) ([]model.Event, error)
	delete(ctx context.Context, id uint) error
}

type Service struct {
	repository eventRepository
}

// Details carries the writable event fields. Slug may be empty on create, in
// which case it is derived from the name.
type Details struct {
	Slug        string
	Name        string
	Date        string
	Description *string
}

func (s Service) Create(ctx context.Context, details Details) (*model.Event, error) {
	eventSlug := details.Slug
	if eventSlug == "" {
		eventSlug = gosimpleslug.Make(details.Name)
	}
	if !handler.IsValidEventSlug(eventSlug) {
		return nil, errdef.NewBadRequest("event id %q must match ^[a-zA-Z0-9_-]+$", eventSlug)
	}

	date, err := parseDate(details.Date)
	if err != nil {
		return nil, err
	}

	event := &model.Event{
		Slug:        eventSlug,
		Name:        details.Name,
		Date:        date,
		Description: details.Description,
	}

	err = s.repository.create(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

// Update applies full-replace semantics, keyed on the event's current slug.
func (s Service) Update(ctx context.Context, slug string, details Details) (*model.Event, error) {
	event, err := s.repository.findBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if details.Slug == "" {
		return nil, errdef.NewBadRequest("event id is required")
	}
	if !handler.IsValidEventSlug(details.Slug) {
		return nil, errdef.NewBadRequest("event id %q must match ^[a-zA-Z0-9_-]+$", details.Slug)
	}

	date, err := parseDate(details.Date)
	if err != nil {
		return nil, err
	}

	event.Slug = details.Slug
	event.Name = details.Name
	event.Date = date
	event.Description = details.Description

	err = s.repository.save(ctx, event)
	if err != nil {
		return nil, err
	}

	return event, nil
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if date, err := time.Parse(layout, value); err == nil {
			return date, nil
		}
	}
	return time.Time{}, errdef.NewBadRequest("date %q is not parseable, want RFC 3339 or YYYY-MM-DD", value)
}

func (s Service) FindBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return s.repository.findBySlug(ctx, slug)
}

func (s Service) FindAll(ctx context.Context) ([]model.Event, error) {
	return s.repository.findAll(ctx)
}

func (s Service) Delete(ctx context.Context, slug string) error {
	event, err := s.repository.findBySlug(ctx, slug)
	if err != nil {
		return err
	}

	return s.repository.delete(ctx, event.ID)
}
