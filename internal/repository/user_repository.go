package repository

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.WebUser) error
	FindActiveByEmail(ctx context.Context, orgID uint, email string) (*model.WebUser, error)
	GetActiveByID(ctx context.Context, id uint) (*model.WebUser, error)
	// List filters by role when role is not empty.
	List(ctx context.Context, orgID uint, role string) ([]model.WebUser, error)
	Deactivate(ctx context.Context, orgID, id uint) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.WebUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindActiveByEmail(ctx context.Context, orgID uint, email string) (*model.WebUser, error) {
	var user model.WebUser
	err := r.db.WithContext(ctx).
		Where("organization_id = ? AND email = ? AND active = ?", orgID, email, true).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetActiveByID(ctx context.Context, id uint) (*model.WebUser, error) {
	var user model.WebUser
	err := r.db.WithContext(ctx).Where("active = ?", true).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, orgID uint, role string) ([]model.WebUser, error) {
	q := r.db.WithContext(ctx).Where("organization_id = ? AND active = ?", orgID, true)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var users []model.WebUser
	err := q.Order("name ASC").Find(&users).Error
	return users, err
}

func (r *userRepository) Deactivate(ctx context.Context, orgID, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.WebUser{}).
		Where("id = ? AND organization_id = ?", id, orgID).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&model.WebUser{}).Where("id = ?", id).Update("password_hash", hash).Error
}
