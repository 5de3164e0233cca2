package grouping

import (
	"context"
	"errors"
	"fmt"
	"strings"

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

// findNextUngroupedSeed returns the ungrouped guest with the
// lexicographically smallest last name, ties broken by insertion order.
func (r repository) findNextUngroupedSeed(ctx context.Context) (*model.Guest, error) {
	var guest *model.Guest
	err := r.db.
		WithContext(ctx).
		Where("group_id IS NULL").
		Order("last_name, id").
		First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("no ungrouped guests remain")
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find next ungrouped guest: %v", err)
	}

	return guest, nil
}

func (r repository) findUngroupedPlusOne(ctx context.Context, mainID uint) (*model.Guest, error) {
	var guest *model.Guest
	err := r.db.
		WithContext(ctx).
		Where("plus_one_of = ? AND group_id IS NULL", mainID).
		First(&guest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errdef.NewNotFound("guest %d has no ungrouped +1", mainID)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find ungrouped +1: %v", err)
	}

	return guest, nil
}

func (r repository) findUngroupedBySourceAndLastName(ctx context.Context, source, lastName string) ([]model.Guest, error) {
	var guests []model.Guest
	err := r.db.
		WithContext(ctx).
		Where("group_id IS NULL AND source = ? AND last_name = ?", source, lastName).
		Order("id").
		Find(&guests).Error
	return guests, err
}

func (r repository) findByIDs(ctx context.Context, ids []uint) ([]model.Guest, error) {
	var guests []model.Guest
	err := r.db.
		WithContext(ctx).
		Where("id IN ?", ids).
		Order("id").
		Find(&guests).Error
	return guests, err
}

// assignGroup sets group_id on every listed guest in one batch update.
// Unknown ids are silently skipped; the returned count says how many rows
// actually matched.
func (r repository) assignGroup(ctx context.Context, groupID uint, guestIDs []uint) (int64, error) {
	ctx = context.WithoutCancel(ctx)

	result := r.db.
		WithContext(ctx).
		Model(&model.Guest{}).
		Where("id IN ?", guestIDs).
		Update("group_id", groupID)
	return result.RowsAffected, result.Error
}

func (r repository) countGuests(ctx context.Context) (total int64, grouped int64, err error) {
	err = r.db.WithContext(ctx).Model(&model.Guest{}).Count(&total).Error
	if err != nil {
		return 0, 0, err
	}

	err = r.db.
		WithContext(ctx).
		Model(&model.Guest{}).
		Where("group_id IS NOT NULL").
		Count(&grouped).Error
	if err != nil {
		return 0, 0, err
	}

	return total, grouped, nil
}

// escapeLike escapes the ILIKE metacharacters so the query is matched as a
// literal substring. "\" is Postgres' default escape character.
func escapeLike(query string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(query)
}

func (r repository) searchUngrouped(ctx context.Context, query string, limit int) ([]model.Guest, error) {
	pattern := "%" + escapeLike(query) + "%"

	var guests []model.Guest
	err := r.db.
		WithContext(ctx).
		Where("group_id IS NULL").
		Where("(first_name ILIKE ? OR last_name ILIKE ? OR source ILIKE ?)", pattern, pattern, pattern).
		Order("last_name, first_name, id").
		Limit(limit).
		Find(&guests).Error
	return guests, err
}
