package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories behind one handle so a unit of work can be
// run against a transaction without the caller touching *gorm.DB.
type Store interface {
	Organizations() OrganizationRepository
	Shifts() ShiftRepository
	Geofences() GeofenceRepository
	People() PersonRepository
	Supervisors() SupervisorRepository
	Locations() LocationRepository
	Marks() AttendanceRepository
	Patrols() PatrolRepository
	Users() UserRepository
	Dashboard() DashboardRepository

	// Transaction runs fn against a Store bound to one database transaction.
	// A non-nil error from fn rolls everything back.
	Transaction(ctx context.Context, fn func(tx Store) error) error

	Ping(ctx context.Context) error
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store {
	return &gormStore{db}
}

func (s *gormStore) Organizations() OrganizationRepository { return NewOrganizationRepository(s.db) }
func (s *gormStore) Shifts() ShiftRepository               { return NewShiftRepository(s.db) }
func (s *gormStore) Geofences() GeofenceRepository         { return NewGeofenceRepository(s.db) }
func (s *gormStore) People() PersonRepository              { return NewPersonRepository(s.db) }
func (s *gormStore) Supervisors() SupervisorRepository     { return NewSupervisorRepository(s.db) }
func (s *gormStore) Locations() LocationRepository         { return NewLocationRepository(s.db) }
func (s *gormStore) Marks() AttendanceRepository           { return NewAttendanceRepository(s.db) }
func (s *gormStore) Patrols() PatrolRepository             { return NewPatrolRepository(s.db) }
func (s *gormStore) Users() UserRepository                 { return NewUserRepository(s.db) }
func (s *gormStore) Dashboard() DashboardRepository        { return NewDashboardRepository(s.db) }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{tx})
	})
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
