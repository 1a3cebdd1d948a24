package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addSupervisor(t *testing.T, f *fixture, dni, name string) model.Supervisor {
	t.Helper()
	sup := model.Supervisor{OrganizationID: 1, DNI: dni, Name: name}
	require.NoError(t, f.db.Create(&sup).Error)
	return sup
}

func ping(dni string, lat, lng float64) PingEvent {
	return PingEvent{OrganizationID: 1, SupervisorDNI: dni, Lat: lat, Lng: lng}
}

func TestRecordPing(t *testing.T) {
	f := newFixture(t)
	addSupervisor(t, f, "87654321", "Luis Rojas")
	uc := f.patrol(t)
	ctx := context.Background()

	res, err := uc.RecordPing(ctx, ping("87654321", insideLat, insideLng))
	require.NoError(t, err)
	assert.Equal(t, "morning", res.ShiftCode)

	// No debounce: an immediate second ping is stored too.
	_, err = uc.RecordPing(ctx, ping("87654321", insideLat, insideLng))
	require.NoError(t, err)

	var n int64
	require.NoError(t, f.db.Model(&model.PatrolPing{}).Count(&n).Error)
	assert.Equal(t, int64(2), n)
}

func TestRecordPing_Rejections(t *testing.T) {
	f := newFixture(t)
	addSupervisor(t, f, "87654321", "Luis Rojas")
	uc := f.patrol(t)
	ctx := context.Background()

	_, err := uc.RecordPing(ctx, ping("00000000", insideLat, insideLng))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	_, err = uc.RecordPing(ctx, ping("", insideLat, insideLng))
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	f.at(20, 0, 0)
	_, err = uc.RecordPing(ctx, ping("87654321", insideLat, insideLng))
	assert.True(t, apperror.IsRejection(err, apperror.CodeNoActiveShift))
}

func TestActiveSupervisors(t *testing.T) {
	f := newFixture(t)
	addSupervisor(t, f, "10000001", "Activo")
	addSupervisor(t, f, "10000002", "Inactivo")
	uc := f.patrol(t)
	ctx := context.Background()

	f.at(7, 58, 0)
	_, err := uc.RecordPing(ctx, ping("10000002", -12.01, -77.01))
	require.NoError(t, err)
	f.at(8, 0, 0)
	_, err = uc.RecordPing(ctx, ping("10000001", -12.02, -77.02))
	require.NoError(t, err)
	f.at(8, 1, 0)
	_, err = uc.RecordPing(ctx, ping("10000001", -12.03, -77.03))
	require.NoError(t, err)

	f.at(8, 2, 0)
	active, err := uc.ActiveSupervisors(ctx, 1, StatusActive)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "10000001", active[0].DNI)
	assert.Equal(t, -12.03, active[0].Lat)
	assert.Equal(t, int64(60), active[0].SecondsSince)
	assert.True(t, active[0].Active)

	stale, err := uc.ActiveSupervisors(ctx, 1, StatusStale)
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "Inactivo", stale[0].Name)
	assert.False(t, stale[0].Active)

	all, err := uc.ActiveSupervisors(ctx, 1, StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSnapshots_StaleBoundary(t *testing.T) {
	now := time.Date(2026, 3, 2, 13, 0, 0, 0, time.UTC)
	pings := []model.PatrolPing{
		{SupervisorID: 1, CreatedAt: now.Add(-119 * time.Second)},
		{SupervisorID: 2, CreatedAt: now.Add(-120 * time.Second)},
	}

	got := Snapshots(pings, now, DefaultStaleAfter, StatusAll)
	require.Len(t, got, 2)
	assert.True(t, got[0].Active)
	assert.False(t, got[1].Active)
}

func TestParseSupervisorStatus(t *testing.T) {
	s, err := ParseSupervisorStatus("")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	s, err = ParseSupervisorStatus("all")
	require.NoError(t, err)
	assert.Equal(t, StatusAll, s)

	_, err = ParseSupervisorStatus("sleeping")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestSupervisorTrack(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&model.Shift{OrganizationID: 1, Code: "night", StartTime: "22:00", EndTime: "05:59:59", Active: true}).Error)
	addSupervisor(t, f, "87654321", "Luis Rojas")
	uc := f.patrol(t)
	ctx := context.Background()

	f.at(9, 0, 0)
	_, err := uc.RecordPing(ctx, ping("87654321", -12.02, -77.02))
	require.NoError(t, err)
	f.at(8, 0, 0)
	_, err = uc.RecordPing(ctx, ping("87654321", -12.01, -77.01))
	require.NoError(t, err)
	f.at(23, 59, 59)
	_, err = uc.RecordPing(ctx, ping("87654321", -12.03, -77.03))
	require.NoError(t, err)
	f.clock.Set(time.Date(2026, time.March, 3, 0, 0, 0, 0, f.clock.Location()))
	_, err = uc.RecordPing(ctx, ping("87654321", -12.04, -77.04))
	require.NoError(t, err)

	track, err := uc.SupervisorTrack(ctx, 1, "87654321", "2026-03-02")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", track.Day)
	require.Len(t, track.Points, 3)
	assert.Equal(t, -12.01, track.Points[0].Lat)
	assert.Equal(t, -12.02, track.Points[1].Lat)
	assert.Equal(t, -12.03, track.Points[2].Lat)
	assert.Len(t, track.LineString(), 3)

	today, err := uc.SupervisorTrack(ctx, 1, "87654321", "")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-03", today.Day)
	assert.Len(t, today.Points, 1)

	_, err = uc.SupervisorTrack(ctx, 1, "87654321", "03/02/2026")
	assert.True(t, apperror.Is(err, apperror.KindValidation))

	_, err = uc.SupervisorTrack(ctx, 1, "99999999", "")
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
}
