package group

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

func (r repository) create(ctx context.Context, group *model.Group) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Create(group).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("group name already exists: %s", group.Name)
	}

	return err
}

func (r repository) save(ctx context.Context, group *model.Group) error {
	ctx = context.WithoutCancel(ctx)

	err := r.db.WithContext(ctx).Save(group).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errdef.NewDuplicated("group name already exists: %s", group.Name)
	}

	return err
}

func (r repository) findByID(ctx context.Context, id uint) (*model.Group, error) {
	var group *model.Group
	err := r.db.WithContext(ctx).First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("group %d doesn't exist", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find group: %v", err)
	}

	return group, nil
}

// findWithGuests loads the group and its members in natural order, so
// "first member" rules behave deterministically.
func (r repository) findWithGuests(ctx context.Context, id uint) (*model.Group, error) {
	var group *model.Group
	err := r.db.
		WithContext(ctx).
		Preload("Guests", func(db *gorm.DB) *gorm.DB {
			return db.Order("guests.id")
		}).
		First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("group %d doesn't exist", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find group with guests: %v", err)
	}

	return group, nil
}

func (r repository) findByName(ctx context.Context, name string) (*model.Group, error) {
	var group *model.Group
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("group %q doesn't exist", name)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find group: %v", err)
	}

	return group, nil
}

func (r repository) findAll(ctx context.Context) ([]model.Group, error) {
	var groups []model.Group
	err := r.db.
		WithContext(ctx).
		Preload("Guests", func(db *gorm.DB) *gorm.DB {
			return db.Order("guests.id")
		}).
		Order("name").
		Find(&groups).Error
	return groups, err
}

// delete nulls the members' group_id before removing the group row. The
// cleanup is application level, there is no database cascade.
func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Guest{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&model.Group{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errdef.NewNotFound("group %d doesn't exist", id)
		}
		return nil
	})
}

// updateGuestContact overwrites the principal guest's contact fields. All
// three columns are written; nil means null, not "keep".
func (r repository) updateGuestContact(ctx context.Context, guestID uint, phone, email, address *string) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).
		Model(&model.Guest{}).
		Where("id = ?", guestID).
		Updates(map[string]any{
			"phone":   phone,
			"email":   email,
			"address": address,
		}).Error
}
