package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"

	"gorm.io/gorm"
)

type OrganizationUsecase struct {
	store      repository.Store
	clock      Clock
	staleAfter time.Duration
}

func NewOrganizationUsecase(store repository.Store, clock Clock, staleAfter time.Duration) *OrganizationUsecase {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &OrganizationUsecase{store: store, clock: clock, staleAfter: staleAfter}
}

// Validate resolves an active organization by its access code.
func (u *OrganizationUsecase) Validate(ctx context.Context, code string) (*model.Organization, error) {
	code = cleanText(code)
	if code == "" {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "código requerido")
	}
	org, err := u.store.Organizations().GetActiveByCode(ctx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(apperror.CodeUnknownOrg, "municipalidad no encontrada")
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo validar la municipalidad", err)
	}
	return org, nil
}

func (u *OrganizationUsecase) Departments(ctx context.Context, orgID uint) ([]model.Department, error) {
	if err := requireOrganization(ctx, u.store, orgID); err != nil {
		return nil, err
	}
	departments, err := u.store.Organizations().ListDepartments(ctx, orgID)
	if err != nil {
		return nil, apperror.FromDB("no se pudo listar las gerencias", err)
	}
	return departments, nil
}

// RegisterSupervisor is idempotent on (organization, dni); an existing
// supervisor is returned untouched.
func (u *OrganizationUsecase) RegisterSupervisor(ctx context.Context, orgID uint, dni, name string) (*model.Supervisor, bool, error) {
	dni, name = cleanText(dni), cleanText(name)
	if dni == "" {
		return nil, false, apperror.Validation(apperror.CodeInvalidInput, "dni es requerido")
	}
	if err := requireOrganization(ctx, u.store, orgID); err != nil {
		return nil, false, err
	}

	supervisor := &model.Supervisor{OrganizationID: orgID, DNI: dni, Name: name}
	created, err := u.store.Supervisors().Register(ctx, supervisor)
	if err != nil {
		return nil, false, apperror.FromDB("no se pudo registrar el supervisor", err)
	}
	return supervisor, created, nil
}

func (u *OrganizationUsecase) Supervisors(ctx context.Context, orgID uint) ([]model.Supervisor, error) {
	supervisors, err := u.store.Supervisors().List(ctx, orgID)
	if err != nil {
		return nil, apperror.FromDB("no se pudo listar los supervisores", err)
	}
	return supervisors, nil
}

// Dashboard summarizes today's activity of the organization.
func (u *OrganizationUsecase) Dashboard(ctx context.Context, orgID uint) (map[string]interface{}, error) {
	now := u.clock.Now()
	today := now.In(u.clock.Location()).Format(dateLayout)
	stats, err := u.store.Dashboard().GetDashboardStats(ctx, orgID, today, now.Add(-u.staleAfter))
	if err != nil {
		return nil, apperror.FromDB("no se pudo leer el resumen", err)
	}
	stats["date"] = today
	return stats, nil
}
