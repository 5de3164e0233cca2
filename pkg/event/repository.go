package event

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

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

func (r repository) create(ctx context.Context, event *model.Event) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Create(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("event id already exists: %s", event.Slug)
	}

	return err
}

func (r repository) save(ctx context.Context, event *model.Event) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Save(event).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("event id already exists: %s", event.Slug)
	}

	return err
}

func (r repository) findBySlug(ctx context.Context, slug string) (*model.Event, error) {
	var event *model.Event
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("event %q doesn't exist", slug)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find event: %v", err)
	}

	return event, nil
}

func (r repository) findAll(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).Order("date, id").Find(&events).Error
	return events, err
}

// delete removes the event and its attendance rows. Application-level
// cleanup, no database cascade.
func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("event_id = ?", id).Delete(&model.Attendance{}).Error
		if err != nil {
			return err
		}

		return tx.Delete(&model.Event{}, id).Error
	})
}
