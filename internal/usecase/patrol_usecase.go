package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/geo"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const DefaultStaleAfter = 120 * time.Second

type SupervisorStatus string

const (
	StatusActive SupervisorStatus = "active"
	StatusStale  SupervisorStatus = "stale"
	StatusAll    SupervisorStatus = "all"
)

// ParseSupervisorStatus maps a query value to a filter; empty means active.
func ParseSupervisorStatus(s string) (SupervisorStatus, error) {
	switch SupervisorStatus(s) {
	case "", StatusActive:
		return StatusActive, nil
	case StatusStale, StatusAll:
		return SupervisorStatus(s), nil
	}
	return "", apperror.Validation(apperror.CodeInvalidInput, "status debe ser active, stale o all")
}

type PingEvent struct {
	OrganizationID uint    `json:"organization_id"`
	SupervisorDNI  string  `json:"supervisor_dni"`
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
}

func (e PingEvent) Validate() error {
	switch {
	case e.OrganizationID == 0:
		return apperror.Validation(apperror.CodeInvalidInput, "organization_id es requerido")
	case e.SupervisorDNI == "":
		return apperror.Validation(apperror.CodeInvalidInput, "supervisor_dni es requerido")
	case !geo.ValidCoordinate(e.Lat, e.Lng):
		return apperror.Validation(apperror.CodeInvalidInput, "coordenadas fuera de rango")
	}
	return nil
}

type PingResult struct {
	PingID    uint      `json:"ping_id"`
	ShiftCode string    `json:"shift"`
	CreatedAt time.Time `json:"created_at"`
}

// SupervisorSnapshot is the last known position of a supervisor.
type SupervisorSnapshot struct {
	SupervisorID uint      `json:"supervisor_id"`
	DNI          string    `json:"dni"`
	Name         string    `json:"name"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	LastSeen     time.Time `json:"last_seen"`
	SecondsSince int64     `json:"seconds_since"`
	Active       bool      `json:"active"`
}

type TrackPoint struct {
	Lat     float64   `json:"lat"`
	Lng     float64   `json:"lng"`
	At      time.Time `json:"at"`
	ShiftID uint      `json:"shift_id"`
}

type Track struct {
	SupervisorID uint         `json:"supervisor_id"`
	DNI          string       `json:"dni"`
	Name         string       `json:"name"`
	Day          string       `json:"day"`
	Points       []TrackPoint `json:"points"`
}

// LineString returns the track as a polyline (X=lng, Y=lat).
func (t *Track) LineString() orb.LineString {
	ls := make(orb.LineString, 0, len(t.Points))
	for _, p := range t.Points {
		ls = append(ls, orb.Point{p.Lng, p.Lat})
	}
	return ls
}

// PatrolUsecase records supervisor pings. Pings skip the debounce, the
// transaction and the lock used for attendance marks.
type PatrolUsecase struct {
	store      repository.Store
	clock      Clock
	staleAfter time.Duration
	shifts     ShiftResolver
	log        logrus.FieldLogger
}

func NewPatrolUsecase(store repository.Store, clock Clock, staleAfter time.Duration, log logrus.FieldLogger) *PatrolUsecase {
	if staleAfter <= 0 {
		staleAfter = DefaultStaleAfter
	}
	return &PatrolUsecase{store: store, clock: clock, staleAfter: staleAfter, log: log}
}

func (u *PatrolUsecase) RecordPing(ctx context.Context, ev PingEvent) (*PingResult, error) {
	ev.SupervisorDNI = cleanText(ev.SupervisorDNI)
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := requireOrganization(ctx, u.store, ev.OrganizationID); err != nil {
		return nil, err
	}

	supervisor, err := u.findSupervisor(ctx, ev.OrganizationID, ev.SupervisorDNI)
	if err != nil {
		return nil, err
	}

	now := u.clock.Now()
	shift, err := u.shifts.Resolve(ctx, u.store.Shifts(), ev.OrganizationID, TimeOfDayOf(now.In(u.clock.Location())))
	if err != nil {
		return nil, apperror.FromDB("no se pudo resolver el turno", err)
	}

	ping := &model.PatrolPing{
		OrganizationID: ev.OrganizationID,
		SupervisorID:   supervisor.ID,
		ShiftID:        shift.ID,
		Lat:            ev.Lat,
		Lng:            ev.Lng,
		CreatedAt:      now.UTC(),
	}
	if err := u.store.Patrols().Create(ctx, ping); err != nil {
		u.log.WithError(err).WithField("supervisor_id", supervisor.ID).Warn("patrol ping not stored")
		return nil, apperror.FromDB("no se pudo registrar la posición", err)
	}
	return &PingResult{PingID: ping.ID, ShiftCode: shift.Code, CreatedAt: ping.CreatedAt}, nil
}

// ActiveSupervisors lists the newest ping of each supervisor, filtered by
// freshness.
func (u *PatrolUsecase) ActiveSupervisors(ctx context.Context, orgID uint, status SupervisorStatus) ([]SupervisorSnapshot, error) {
	pings, err := u.store.Patrols().LatestPerSupervisor(ctx, orgID)
	if err != nil {
		return nil, apperror.FromDB("no se pudo leer las posiciones", err)
	}
	return Snapshots(pings, u.clock.Now(), u.staleAfter, status), nil
}

// Snapshots classifies latest pings: a supervisor is active while its last
// ping is younger than staleAfter.
func Snapshots(pings []model.PatrolPing, now time.Time, staleAfter time.Duration, status SupervisorStatus) []SupervisorSnapshot {
	out := make([]SupervisorSnapshot, 0, len(pings))
	for _, p := range pings {
		age := now.Sub(p.CreatedAt)
		active := age < staleAfter
		if (status == StatusActive && !active) || (status == StatusStale && active) {
			continue
		}
		snap := SupervisorSnapshot{
			SupervisorID: p.SupervisorID,
			Lat:          p.Lat,
			Lng:          p.Lng,
			LastSeen:     p.CreatedAt,
			SecondsSince: int64(age / time.Second),
			Active:       active,
		}
		if p.Supervisor != nil {
			snap.DNI = p.Supervisor.DNI
			snap.Name = p.Supervisor.Name
		}
		out = append(out, snap)
	}
	return out
}

// SupervisorTrack returns the supervisor's pings on a local calendar day,
// oldest first. An empty day means today.
func (u *PatrolUsecase) SupervisorTrack(ctx context.Context, orgID uint, dni, day string) (*Track, error) {
	supervisor, err := u.findSupervisor(ctx, orgID, cleanText(dni))
	if err != nil {
		return nil, err
	}
	from, to, err := dayBounds(u.clock, day)
	if err != nil {
		return nil, apperror.Validation(apperror.CodeInvalidInput, "fecha inválida, use YYYY-MM-DD")
	}

	pings, err := u.store.Patrols().ListBetween(ctx, orgID, supervisor.ID, from, to)
	if err != nil {
		return nil, apperror.FromDB("no se pudo leer el recorrido", err)
	}

	track := &Track{
		SupervisorID: supervisor.ID,
		DNI:          supervisor.DNI,
		Name:         supervisor.Name,
		Day:          from.Format(dateLayout),
		Points:       make([]TrackPoint, 0, len(pings)),
	}
	for _, p := range pings {
		track.Points = append(track.Points, TrackPoint{Lat: p.Lat, Lng: p.Lng, At: p.CreatedAt, ShiftID: p.ShiftID})
	}
	return track, nil
}

func (u *PatrolUsecase) findSupervisor(ctx context.Context, orgID uint, dni string) (*model.Supervisor, error) {
	supervisor, err := u.store.Supervisors().FindByDNI(ctx, orgID, dni)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound(apperror.CodeUnknownSupervisor, "supervisor no registrado")
	}
	if err != nil {
		return nil, apperror.FromDB("no se pudo leer el supervisor", err)
	}
	return supervisor, nil
}
