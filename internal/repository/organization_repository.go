package repository

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

type OrganizationRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Organization, error)
	GetActiveByCode(ctx context.Context, code string) (*model.Organization, error)
	ListDepartments(ctx context.Context, orgID uint) ([]model.Department, error)
	Create(ctx context.Context, org *model.Organization) error
}

type organizationRepository struct {
	db *gorm.DB
}

func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db}
}

func (r *organizationRepository) GetByID(ctx context.Context, id uint) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).First(&org, id).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) GetActiveByCode(ctx context.Context, code string) (*model.Organization, error) {
	var org model.Organization
	err := r.db.WithContext(ctx).Where("code = ? AND active = ?", code, true).First(&org).Error
	if err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *organizationRepository) ListDepartments(ctx context.Context, orgID uint) ([]model.Department, error) {
	var departments []model.Department
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND active = ?", orgID, true).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

func (r *organizationRepository) Create(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}
