package guest

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

// Filter narrows findAll for the admin panel list views.
type Filter struct {
	GroupID   *uint
	Ungrouped bool
}

func (r repository) create(ctx context.Context, guest *model.Guest) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Create(guest).Error
}

func (r repository) save(ctx context.Context, guest *model.Guest) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Save(guest).Error
}

func (r repository) findByID(ctx context.Context, id uint) (*model.Guest, error) {
	var guest *model.Guest
	err := r.db.WithContext(ctx).First(&guest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("guest %d doesn't exist", id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find guest: %v", err)
	}

	return guest, nil
}

func (r repository) findAll(ctx context.Context, filter Filter) ([]model.Guest, error) {
	query := r.db.WithContext(ctx).Order("last_name, first_name, id")
	if filter.Ungrouped {
		query = query.Where("group_id IS NULL")
	} else if filter.GroupID != nil {
		query = query.Where("group_id = ?", *filter.GroupID)
	}

	var guests []model.Guest
	err := query.Find(&guests).Error
	return guests, err
}

func (r repository) findPlusOne(ctx context.Context, mainID uint) (*model.Guest, error) {
	var guest *model.Guest
	err := r.db.WithContext(ctx).Where("plus_one_of = ?", mainID).First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("guest %d has no +1", mainID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find +1: %v", err)
	}

	return guest, nil
}

// delete removes the guest together with their attendance rows and detaches
// any guest pointing at them through plus_one_of. Referential cleanup is done
// here, not by database cascades, mirroring the group deletion rule.
func (r repository) delete(ctx context.Context, id uint) error {
	ctx = context.WithoutCancel(ctx)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Guest{}).
			Where("plus_one_of = ?", id).
			Update("plus_one_of", nil).Error
		if err != nil {
			return err
		}

		err = tx.Where("guest_id = ?", id).Delete(&model.Attendance{}).Error
		if err != nil {
			return err
		}

		result := tx.Delete(&model.Guest{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errdef.NewNotFound("guest %d doesn't exist", id)
		}
		return nil
	})
}
