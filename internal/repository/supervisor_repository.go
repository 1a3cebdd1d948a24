package repository

import (
	"context"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SupervisorRepository interface {
	FindByDNI(ctx context.Context, orgID uint, dni string) (*model.Supervisor, error)
	// Register inserts the supervisor unless (organization, dni) already
	// exists. It reports whether a row was created and always fills the ID.
	Register(ctx context.Context, supervisor *model.Supervisor) (bool, error)
	List(ctx context.Context, orgID uint) ([]model.Supervisor, error)
}

type supervisorRepository struct {
	db *gorm.DB
}

func NewSupervisorRepository(db *gorm.DB) SupervisorRepository {
	return &supervisorRepository{db}
}

func (r *supervisorRepository) FindByDNI(ctx context.Context, orgID uint, dni string) (*model.Supervisor, error) {
	var supervisor model.Supervisor
	err := r.db.WithContext(ctx).Where("organization_id = ? AND dni = ?", orgID, dni).First(&supervisor).Error
	if err != nil {
		return nil, err
	}
	return &supervisor, nil
}

func (r *supervisorRepository) Register(ctx context.Context, supervisor *model.Supervisor) (bool, error) {
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "organization_id"}, {Name: "dni"}},
		DoNothing: true,
	}).Create(supervisor)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return true, nil
	}

	existing, err := r.FindByDNI(ctx, supervisor.OrganizationID, supervisor.DNI)
	if err != nil {
		return false, err
	}
	*supervisor = *existing
	return false, nil
}

func (r *supervisorRepository) List(ctx context.Context, orgID uint) ([]model.Supervisor, error) {
	var supervisors []model.Supervisor
	err := r.db.WithContext(ctx).Where("organization_id = ?", orgID).Order("name ASC").Find(&supervisors).Error
	return supervisors, err
}
