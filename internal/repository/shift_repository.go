package repository

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

type ShiftRepository interface {
	// ListActive returns the active shifts of an organization in ascending id
	// order, which is the evaluation order used to resolve overlaps.
	ListActive(ctx context.Context, orgID uint) ([]model.Shift, error)
	GetAll(ctx context.Context, orgID uint) ([]model.Shift, error)
	GetByID(ctx context.Context, orgID, id uint) (*model.Shift, error)
	Create(ctx context.Context, shift *model.Shift) error
	Update(ctx context.Context, shift *model.Shift) error
	Delete(ctx context.Context, orgID, id uint) error
}

type shiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) ShiftRepository {
	return &shiftRepository{db}
}

func (r *shiftRepository) ListActive(ctx context.Context, orgID uint) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND active = ?", orgID, true).
		Order("id ASC").
		Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) GetAll(ctx context.Context, orgID uint) ([]model.Shift, error) {
	var shifts []model.Shift
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Order("id ASC").Find(&shifts).Error
	return shifts, err
}

func (r *shiftRepository) GetByID(ctx context.Context, orgID, id uint) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).First(&shift, id).Error
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepository) Create(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Create(shift).Error
}

func (r *shiftRepository) Update(ctx context.Context, shift *model.Shift) error {
	return r.db.WithContext(ctx).Save(shift).Error
}

func (r *shiftRepository) Delete(ctx context.Context, orgID, id uint) error {
	res := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Delete(&model.Shift{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
