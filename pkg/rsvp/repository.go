package rsvp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/weddinghub/guest-manager/internal/errdef"
	"github.com/weddinghub/guest-manager/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewRepository(db *gorm.DB) *repository {
	return &repository{db: db}
}

type repository struct {
	db *gorm.DB
}

func (r repository) findGuestIDsByGroup(ctx context.Context, groupID uint) ([]uint, error) {
	var ids []uint
	err := r.db.
		WithContext(ctx).
		Model(&model.Guest{}).
		Where("group_id = ?", groupID).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

func (r repository) findEventBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var event *model.Event
	err := r.db.
		WithContext(ctx).
		Where("slug = ?", slug).
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event not found: %s", slug)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find event: %v", err)
	}

	return event, nil
}

func (r repository) findEventsBySlugs(ctx context.Context, slugs []string) ([]model.Event, error) {
	var events []model.Event
	err := r.db.
		WithContext(ctx).
		Where("slug IN ?", slugs).
		Find(&events).Error
	return events, err
}

// upsertBatch writes every row in one insert, updating response and notes on
// conflict of (event_id, guest_id). Re-submitting the same batch is a no-op
// beyond bumping updated_at.
func (r repository) upsertBatch(ctx context.Context, attendances []model.Attendance) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.
		WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "event_id"}, {Name: "guest_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"response", "notes", "updated_at"}),
		}).
		Create(&attendances).Error
}

func (r repository) countResponses(ctx context.Context, eventID uint) (yes int64, no int64, err error) {
	err = r.db.
		WithContext(ctx).
		Model(&model.Attendance{}).
		Where("event_id = ? AND response = ?", eventID, model.ResponseYes).
		Count(&yes).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.
		WithContext(ctx).
		Model(&model.Attendance{}).
		Where("event_id = ? AND response = ?", eventID, model.ResponseNo).
		Count(&no).Error
	if err != nil {
		return 0, 0, err
	}

	return yes, no, nil
}

func (r repository) countGuests(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.
		WithContext(ctx).
		Model(&model.Guest{}).
		Count(&total).Error
	return total, err
}

// GroupResponse is one saved answer of a group member, keyed by the event
// slug so the guest site can re-render its forms.
type GroupResponse struct {
	GuestID   uint      `json:"guestId"`
	EventID   string    `json:"eventId"`
	Response  string    `json:"response"`
	Notes     *string   `json:"notes"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r repository) findResponsesByGuestIDs(ctx context.Context, guestIDs []uint) ([]GroupResponse, error) {
	var responses []GroupResponse
	err := r.db.
		WithContext(ctx).
		Model(&model.Attendance{}).
		Select("event_attendees.guest_id, events.slug AS event_id, event_attendees.response, event_attendees.notes, event_attendees.updated_at").
		Joins("JOIN events ON events.id = event_attendees.event_id").
		Where("event_attendees.guest_id IN ?", guestIDs).
		Order("events.date, events.id, event_attendees.guest_id").
		Scan(&responses).Error
	return responses, err
}
