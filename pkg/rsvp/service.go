package rsvp

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/go-mail/mail"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/pkg/activity"
	"github.com/weddinghub/guest-manager/pkg/model"
)

// NewService creates the RSVP service. dialer may be nil, in which case no
// notification mails are sent.
func NewService(logger *slog.Logger, repository rsvpRepository, publisher activityPublisher, dialer Dialer, notificationEmail string) *Service {
	return &Service{
		logger:            logger,
		repository:        repository,
		publisher:         publisher,
		dialer:            dialer,
		notificationEmail: notificationEmail,
	}
}

type activityPublisher interface {
	Publish(event activity.Event)
}

type rsvpRepository interface {
	findGuestIDsByGroup(ctx context.Context, groupID uint) ([]uint, error)
	findEventBySlug(ctx context.Context, slug string) (*model.Event, error)
	findEventsBySlugs(ctx context.Context, slugs []string) ([]model.Event, error)
	upsertBatch(ctx context.Context, attendances []model.Attendance) error
	countResponses(ctx context.Context, eventID uint) (yes int64, no int64, err error)
	countGuests(ctx context.Context) (int64, error)
	findResponsesByGuestIDs(ctx context.Context, guestIDs []uint) ([]GroupResponse, error)
}

type Dialer interface {
	DialAndSend(m ...*mail.Message) error
}

type Service struct {
	logger            *slog.Logger
	repository        rsvpRepository
	publisher         activityPublisher
	dialer            Dialer
	notificationEmail string
}

// Entry is one answer in a batch submission. EventID is the event slug.
type Entry struct {
	GuestID  uint    `json:"guestId" binding:"required"`
	EventID  string  `json:"eventId" binding:"required"`
	Response string  `json:"response" binding:"required,oneOf=yes no no_answer"`
	Notes    *string `json:"notes"`
}

// SubmitBatch validates and persists a group's answers in one upsert. The
// whole batch is rejected if any entry is malformed, names a guest outside
// the group, or names an unknown event. Nothing is written on rejection.
func (s Service) SubmitBatch(ctx context.Context, groupID uint, entries []Entry) error {
	if len(entries) == 0 {
		return errdef.NewBadRequest("at least one response is required")
	}

	for _, entry := range entries {
		if entry.GuestID == 0 || entry.EventID == "" || entry.Response == "" {
			return errdef.NewBadRequest("guestId, eventId and response are required on every entry")
		}
		if !model.IsValidResponse(entry.Response) {
			return errdef.NewBadRequest("invalid response value: %s", entry.Response)
		}
	}

	err := s.validateOwnership(ctx, groupID, entries)
	if err != nil {
		return err
	}

	eventIDsBySlug, err := s.resolveEvents(ctx, entries)
	if err != nil {
		return err
	}

	attendances := collapseEntries(entries, eventIDsBySlug)
	err = s.repository.upsertBatch(ctx, attendances)
	if err != nil {
		return err
	}

	s.publisher.Publish(activity.Event{
		Type:    activity.TypeRsvpSubmitted,
		Message: fmt.Sprintf("group %d submitted %d response(s)", groupID, len(attendances)),
	})
	s.notify(groupID, len(attendances))
	return nil
}

func (s Service) validateOwnership(ctx context.Context, groupID uint, entries []Entry) error {
	guestIDs, err := s.repository.findGuestIDsByGroup(ctx, groupID)
	if err != nil {
		return err
	}

	members := make(map[uint]struct{}, len(guestIDs))
	for _, id := range guestIDs {
		members[id] = struct{}{}
	}

	for _, entry := range entries {
		if _, ok := members[entry.GuestID]; !ok {
			return errdef.NewForbidden("guest %d doesn't belong to your group", entry.GuestID)
		}
	}

	return nil
}

func (s Service) resolveEvents(ctx context.Context, entries []Entry) (map[string]uint, error) {
	slugs := make([]string, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if _, ok := seen[entry.EventID]; ok {
			continue
		}
		seen[entry.EventID] = struct{}{}
		slugs = append(slugs, entry.EventID)
	}

	events, err := s.repository.findEventsBySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	eventIDsBySlug := make(map[string]uint, len(events))
	for _, event := range events {
		eventIDsBySlug[event.Slug] = event.ID
	}

	for _, slug := range slugs {
		if _, ok := eventIDsBySlug[slug]; !ok {
			return nil, errdef.NewNotFound("event not found: %s", slug)
		}
	}

	return eventIDsBySlug, nil
}

// collapseEntries maps entries to attendance rows, keeping only the last
// entry per (event, guest) so the insert never touches the same row twice.
func collapseEntries(entries []Entry, eventIDsBySlug map[string]uint) []model.Attendance {
	type key struct {
		eventID uint
		guestID uint
	}

	index := make(map[key]int, len(entries))
	attendances := make([]model.Attendance, 0, len(entries))
	for _, entry := range entries {
		attendance := model.Attendance{
			EventID:  eventIDsBySlug[entry.EventID],
			GuestID:  entry.GuestID,
			Response: entry.Response,
			Notes:    entry.Notes,
		}

		k := key{eventID: attendance.EventID, guestID: attendance.GuestID}
		if i, ok := index[k]; ok {
			attendances[i] = attendance
			continue
		}
		index[k] = len(attendances)
		attendances = append(attendances, attendance)
	}

	return attendances
}

// notify mails the couple about an accepted batch. Best effort; failures are
// logged and never surface to the submitting group.
func (s Service) notify(groupID uint, count int) {
	if s.dialer == nil || s.notificationEmail == "" {
		return
	}

	m := mail.NewMessage()
	m.SetHeader("From", "Wedding Guest Manager <no-reply@weddinghub.io>")
	m.SetHeader("To", s.notificationEmail)
	m.SetHeader("Subject", "New RSVP responses")
	body := fmt.Sprintf("Group %d just submitted %d RSVP response(s). Have a look at the admin panel for details.", groupID, count)
	m.SetBody("text/plain", body)

	err := s.dialer.DialAndSend(m)
	if err != nil {
		s.logger.Error("Failed to send RSVP notification", "error", err, "groupId", groupID)
	}
}

// Summary is the attendance breakdown of one event. Guests without a row
// count as no_answer, so the three buckets always sum to the guest total.
type Summary struct {
	EventID            string `json:"eventId"`
	EventName          string `json:"eventName"`
	TotalGuests        int64  `json:"totalGuests"`
	Yes                int64  `json:"yes"`
	No                 int64  `json:"no"`
	NoAnswer           int64  `json:"noAnswer"`
	YesPercentage      int    `json:"yesPercentage"`
	NoPercentage       int    `json:"noPercentage"`
	NoAnswerPercentage int    `json:"noAnswerPercentage"`
}

func (s Service) EventSummary(ctx context.Context, slug string) (*Summary, error) {
	event, err := s.repository.findEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	yes, no, err := s.repository.countResponses(ctx, event.ID)
	if err != nil {
		return nil, err
	}

	total, err := s.repository.countGuests(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		EventID:     event.Slug,
		EventName:   event.Name,
		TotalGuests: total,
		Yes:         yes,
		No:          no,
		NoAnswer:    total - yes - no,
	}
	if total > 0 {
		summary.YesPercentage = percentage(yes, total)
		summary.NoPercentage = percentage(no, total)
		summary.NoAnswerPercentage = percentage(summary.NoAnswer, total)
	}

	return summary, nil
}

func percentage(part, total int64) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

// GroupResponses returns the group's saved answers so the guest site can
// pre-fill its forms.
func (s Service) GroupResponses(ctx context.Context, groupID uint) ([]GroupResponse, error) {
	guestIDs, err := s.repository.findGuestIDsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if len(guestIDs) == 0 {
		return []GroupResponse{}, nil
	}

	return s.repository.findResponsesByGuestIDs(ctx, guestIDs)
}
