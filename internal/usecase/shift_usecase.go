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

type ShiftInput struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Active    *bool  `json:"active"`
}

// window validates the input and returns the canonical HH:MM:SS bounds.
func (in ShiftInput) window() (Window, error) {
	if cleanText(in.Code) == "" {
		return Window{}, apperror.Validation(apperror.CodeInvalidInput, "code es requerido")
	}
	start, err := ParseTimeOfDay(in.StartTime)
	if err != nil {
		return Window{}, apperror.Validation(apperror.CodeInvalidInput, "start_time inválido, use HH:MM")
	}
	end, err := ParseTimeOfDay(in.EndTime)
	if err != nil {
		return Window{}, apperror.Validation(apperror.CodeInvalidInput, "end_time inválido, use HH:MM")
	}
	w := Window{Start: start, End: end}
	if w.Degenerate() {
		return Window{}, apperror.Validation(apperror.CodeInvalidInput, "el turno debe tener inicio y fin distintos")
	}
	return w, nil
}

type ShiftUsecase struct {
	store    repository.Store
	clock    Clock
	resolver ShiftResolver
}

func NewShiftUsecase(store repository.Store, clock Clock) *ShiftUsecase {
	return &ShiftUsecase{store: store, clock: clock}
}

// CurrentShift returns the shift in force at the given instant, or nil when
// none is. A zero instant means now.
func (u *ShiftUsecase) CurrentShift(ctx context.Context, orgID uint, at time.Time) (*model.Shift, error) {
	if err := requireOrganization(ctx, u.store, orgID); err != nil {
		return nil, err
	}
	if at.IsZero() {
		at = u.clock.Now()
	}
	shift, err := u.resolver.Resolve(ctx, u.store.Shifts(), orgID, TimeOfDayOf(at.In(u.clock.Location())))
	if apperror.IsRejection(err, apperror.CodeNoActiveShift) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo resolver el turno", err)
	}
	return shift, nil
}

func (u *ShiftUsecase) List(ctx context.Context, orgID uint) ([]model.Shift, error) {
	shifts, err := u.store.Shifts().GetAll(ctx, orgID)
	if err != nil {
		return nil, apperror.FromDB("no se pudo listar los turnos", err)
	}
	return shifts, nil
}

func (u *ShiftUsecase) Create(ctx context.Context, orgID uint, in ShiftInput) (*model.Shift, error) {
	w, err := in.window()
	if err != nil {
		return nil, err
	}
	shift := &model.Shift{
		OrganizationID: orgID,
		Code:           cleanText(in.Code),
		Name:           cleanText(in.Name),
		StartTime:      w.Start.String(),
		EndTime:        w.End.String(),
		Active:         in.Active == nil || *in.Active,
	}
	if err := u.store.Shifts().Create(ctx, shift); err != nil {
		return nil, apperror.FromDB("no se pudo crear el turno", err)
	}
	return shift, nil
}

func (u *ShiftUsecase) Update(ctx context.Context, orgID, id uint, in ShiftInput) (*model.Shift, error) {
	w, err := in.window()
	if err != nil {
		return nil, err
	}
	shift, err := u.store.Shifts().GetByID(ctx, orgID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("unknown_shift", "turno no encontrado")
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo leer el turno", err)
	}

	shift.Code = cleanText(in.Code)
	shift.Name = cleanText(in.Name)
	shift.StartTime = w.Start.String()
	shift.EndTime = w.End.String()
	if in.Active != nil {
		shift.Active = *in.Active
	}
	if err := u.store.Shifts().Update(ctx, shift); err != nil {
		return nil, apperror.FromDB("no se pudo actualizar el turno", err)
	}
	return shift, nil
}

func (u *ShiftUsecase) Delete(ctx context.Context, orgID, id uint) error {
	err := u.store.Shifts().Delete(ctx, orgID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("unknown_shift", "turno no encontrado")
	}
	return apperror.FromDB("no se pudo eliminar el turno", err)
}
