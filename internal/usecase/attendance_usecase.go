package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/geo"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Locker serializes work per key for the lifetime of the returned release.
type Locker interface {
	Lock(ctx context.Context, key string) (func(), error)
}

// AttendanceEvent is one badge scan as received from a device.
type AttendanceEvent struct {
	OrganizationID uint    `json:"organization_id"`
	DNI            string  `json:"dni"`
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Department     string  `json:"department"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Comment        string  `json:"comment"`
	SupervisorDNI  string  `json:"supervisor_dni"`
}

// Normalize trims and canonicalizes the free-text fields in place.
func (e *AttendanceEvent) Normalize() {
	e.DNI = cleanText(e.DNI)
	e.Name = cleanText(e.Name)
	e.Role = cleanText(e.Role)
	e.Department = cleanText(e.Department)
	e.Comment = cleanText(e.Comment)
	e.SupervisorDNI = cleanText(e.SupervisorDNI)
}

func (e AttendanceEvent) Validate() error {
	switch {
	case e.OrganizationID == 0:
		return apperror.Validation(apperror.CodeInvalidInput, "organization_id es requerido")
	case e.DNI == "":
		return apperror.Validation(apperror.CodeInvalidInput, "dni es requerido")
	case len(e.DNI) > 20:
		return apperror.Validation(apperror.CodeInvalidInput, "dni demasiado largo")
	case !geo.ValidCoordinate(e.Lat, e.Lng):
		return apperror.Validation(apperror.CodeInvalidInput, "coordenadas fuera de rango")
	}
	return nil
}

type MarkResult struct {
	MarkID    uint      `json:"mark_id"`
	ShiftCode string    `json:"shift"`
	Sector    *string   `json:"sector"`
	CreatedAt time.Time `json:"created_at"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
}

type LastMark struct {
	Exists bool   `json:"exists"`
	Date   string `json:"date,omitempty"`
	Time   string `json:"time,omitempty"`
}

type AttendanceUsecase struct {
	store     repository.Store
	clock     Clock
	locker    Locker
	guard     DebounceGuard
	shifts    ShiftResolver
	geofences GeofenceMatcher
	log       logrus.FieldLogger
}

func NewAttendanceUsecase(store repository.Store, clock Clock, locker Locker, guard DebounceGuard, log logrus.FieldLogger) *AttendanceUsecase {
	return &AttendanceUsecase{
		store:  store,
		clock:  clock,
		locker: locker,
		guard:  guard,
		log:    log,
	}
}

// Record admits a scan and stores it. Everything from the debounce read to
// the mark insert runs in one transaction while the person's lock is held,
// so concurrent scans of one person produce at most one mark per window.
func (u *AttendanceUsecase) Record(ctx context.Context, ev AttendanceEvent) (*MarkResult, error) {
	ev.Normalize()
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := requireOrganization(ctx, u.store, ev.OrganizationID); err != nil {
		return nil, err
	}

	unlock, err := u.locker.Lock(ctx, ev.DNI)
	if err != nil {
		return nil, apperror.Persistence("tiempo de espera agotado", err)
	}
	defer unlock()

	// One clock read feeds the instant and the local snapshot.
	now := u.clock.Now()
	local := now.In(u.clock.Location())

	var result *MarkResult
	err = u.store.Transaction(ctx, func(tx repository.Store) error {
		if err := tx.People().LockForUpdate(ctx, ev.DNI); err != nil {
			return err
		}

		// 1. Debounce
		if err := u.guard.Check(ctx, tx.Marks(), ev.DNI, ev.OrganizationID, now); err != nil {
			return err
		}

		// 2. Shift in force
		shift, err := u.shifts.Resolve(ctx, tx.Shifts(), ev.OrganizationID, TimeOfDayOf(local))
		if err != nil {
			return err
		}

		// 3. Person, last write wins
		person := &model.Person{
			DNI:            ev.DNI,
			OrganizationID: ev.OrganizationID,
			Name:           ev.Name,
			Role:           ev.Role,
			Department:     ev.Department,
			CreatedAt:      now.UTC(),
			UpdatedAt:      now.UTC(),
		}
		if err := tx.People().Upsert(ctx, person); err != nil {
			return err
		}

		// 4. Sector
		fence, err := u.geofences.Match(ctx, tx.Geofences(), ev.OrganizationID, ev.Lat, ev.Lng)
		if err != nil {
			return err
		}
		var sector *string
		if fence != nil {
			name := fence.Name
			sector = &name
		}

		// 5. Location
		location := &model.Location{
			OrganizationID: ev.OrganizationID,
			Lat:            ev.Lat,
			Lng:            ev.Lng,
			Sector:         sector,
			CreatedAt:      now.UTC(),
		}
		if err := tx.Locations().Create(ctx, location); err != nil {
			return err
		}

		// 6. Supervisor link, optional
		var supervisorID *uint
		if ev.SupervisorDNI != "" {
			sup, err := tx.Supervisors().FindByDNI(ctx, ev.OrganizationID, ev.SupervisorDNI)
			switch {
			case err == nil:
				supervisorID = &sup.ID
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		// 7. Mark
		mark := &model.AttendanceMark{
			OrganizationID: ev.OrganizationID,
			PersonDNI:      ev.DNI,
			SupervisorID:   supervisorID,
			LocationID:     location.ID,
			ShiftID:        shift.ID,
			CreatedAt:      now.UTC(),
			Date:           local.Format(dateLayout),
			Time:           local.Format(timeLayout),
			Department:     ev.Department,
			Comment:        ev.Comment,
		}
		if err := tx.Marks().Create(ctx, mark); err != nil {
			return err
		}

		result = &MarkResult{
			MarkID:    mark.ID,
			ShiftCode: shift.Code,
			Sector:    sector,
			CreatedAt: mark.CreatedAt,
			Date:      mark.Date,
			Time:      mark.Time,
		}
		return nil
	})

	entry := u.log.WithFields(logrus.Fields{"organization_id": ev.OrganizationID, "dni": ev.DNI})
	if err != nil {
		if apperror.IsRejection(err, "") {
			e, _ := apperror.As(err)
			entry.WithField("code", e.Code).Info("attendance mark rejected")
			return nil, err
		}
		entry.WithError(err).Error("attendance mark failed")
		return nil, apperror.FromDB("no se pudo registrar la marcación", err)
	}

	entry.WithFields(logrus.Fields{"mark_id": result.MarkID, "shift": result.ShiftCode}).Info("attendance mark recorded")
	return result, nil
}

// LastMark reports the local date and time of the person's newest mark.
func (u *AttendanceUsecase) LastMark(ctx context.Context, dni string) (*LastMark, error) {
	dni = cleanText(dni)
	if dni == "" {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "dni es requerido")
	}
	mark, err := u.store.Marks().LastByDNI(ctx, dni)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &LastMark{Exists: false}, nil
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo leer la última marcación", err)
	}
	return &LastMark{Exists: true, Date: mark.Date, Time: mark.Time}, nil
}

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

// List returns marks newest first.
func (u *AttendanceUsecase) List(ctx context.Context, filter repository.MarkFilter) ([]model.AttendanceMark, int64, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultPageSize
	}
	if filter.Limit > maxPageSize {
		filter.Limit = maxPageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	for _, d := range []string{filter.From, filter.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d); err != nil {
			return nil, 0, apperror.Validation(apperror.CodeInvalidInput, "fecha inválida, use YYYY-MM-DD")
		}
	}

	marks, total, err := u.store.Marks().List(ctx, filter)
	if err != nil {
		return nil, 0, apperror.FromDB("no se pudo listar las marcaciones", err)
	}
	return marks, total, nil
}

// Recap counts marks per shift and department on a local date, today when
// date is empty.
func (u *AttendanceUsecase) Recap(ctx context.Context, orgID uint, date string) (string, []repository.RecapRow, error) {
	start, _, err := dayBounds(u.clock, date)
	if err != nil {
		return "", nil, apperror.Validation(apperror.CodeInvalidInput, "fecha inválida, use YYYY-MM-DD")
	}
	day := start.Format(dateLayout)
	rows, err := u.store.Marks().RecapByDate(ctx, orgID, day)
	if err != nil {
		return "", nil, apperror.FromDB("no se pudo generar el resumen", err)
	}
	return day, rows, nil
}

func requireOrganization(ctx context.Context, store repository.Store, orgID uint) error {
	org, err := store.Organizations().GetByID(ctx, orgID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !org.Active) {
		return apperror.NotFound(apperror.CodeUnknownOrg, "municipalidad no encontrada")
	}
	if err != nil {
		return apperror.FromDB("no se pudo validar la municipalidad", err)
	}
	return nil
}
