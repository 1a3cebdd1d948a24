package usecase

import (
	"testing"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/lock"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/testutil"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Inside and outside "Zone A", a block in central Lima.
const (
	insideLat, insideLng   = -12.0460, -77.0290
	outsideLat, outsideLng = -12.0600, -77.0500
)

type fixture struct {
	db    *gorm.DB
	store repository.Store
	clock *testutil.Clock
	org   model.Organization
	shift model.Shift
	zone  model.Geofence
}

// newFixture seeds organization 1 with a 06:00-14:00 "morning" shift and
// the "Zone A" geofence. The clock starts at 2026-03-02 08:00:00 in Lima.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)
	f := &fixture{
		db:    db,
		store: repository.NewStore(db),
		clock: testutil.NewClock(testutil.Lima, 2026, time.March, 2, 8, 0, 0),
	}

	f.org = model.Organization{Code: "MUNI01", Name: "Municipalidad de Prueba", Active: true}
	require.NoError(t, db.Create(&f.org).Error)
	require.Equal(t, uint(1), f.org.ID)

	f.shift = model.Shift{OrganizationID: f.org.ID, Code: "morning", StartTime: "06:00", EndTime: "14:00", Active: true}
	require.NoError(t, db.Create(&f.shift).Error)

	f.zone = model.Geofence{
		OrganizationID: f.org.ID,
		Name:           "Zone A",
		Color:          "#ff0000",
		Active:         true,
		Points: []model.GeofencePoint{
			{Seq: 1, Lat: -12.0470, Lng: -77.0300},
			{Seq: 2, Lat: -12.0470, Lng: -77.0280},
			{Seq: 3, Lat: -12.0450, Lng: -77.0280},
			{Seq: 4, Lat: -12.0450, Lng: -77.0300},
		},
	}
	require.NoError(t, db.Create(&f.zone).Error)
	return f
}

func (f *fixture) attendance(t *testing.T) *AttendanceUsecase {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	return NewAttendanceUsecase(f.store, f.clock, lock.NewKeyed(), DebounceGuard{Window: DefaultDebounceWindow}, log)
}

func (f *fixture) patrol(t *testing.T) *PatrolUsecase {
	t.Helper()
	log, _ := logtest.NewNullLogger()
	return NewPatrolUsecase(f.store, f.clock, DefaultStaleAfter, log)
}

func (f *fixture) at(hour, min, sec int) {
	f.clock.Set(time.Date(2026, time.March, 2, hour, min, sec, 0, testutil.Lima))
}

func scan(dni string) AttendanceEvent {
	return AttendanceEvent{
		OrganizationID: 1,
		DNI:            dni,
		Name:           "Ana Quispe",
		Role:           "Sereno",
		Department:     "Seguridad Ciudadana",
		Lat:            insideLat,
		Lng:            insideLng,
	}
}
