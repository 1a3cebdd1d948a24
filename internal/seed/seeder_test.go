package seed

import (
	"context"
	"testing"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/testutil"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseFixture(t *testing.T) {
	f, err := LoadFixture("testdata/fixtures.yaml")
	require.NoError(t, err)
	require.Len(t, f.Organizations, 1)

	org := f.Organizations[0]
	assert.Equal(t, "MUNI01", org.Code)
	assert.Len(t, org.Shifts, 3)
	assert.Equal(t, "22:00", org.Shifts[2].StartTime)
	require.Len(t, org.Geofences, 1)
	assert.Equal(t, [2]float64{-12.0470, -77.0280}, org.Geofences[0].Points[1])
	assert.Equal(t, "ADMIN", org.Users[0].Role)

	_, err = ParseFixture([]byte("organizations:\n  - name: Sin codigo\n"))
	assert.Error(t, err)
	_, err = ParseFixture([]byte("organisations: []\n"))
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	log, hook := logtest.NewNullLogger()
	f, err := LoadFixture("testdata/fixtures.yaml")
	require.NoError(t, err)

	s := NewSeeder(db, log).WithBcryptCost(bcrypt.MinCost)
	require.NoError(t, s.Seed(context.Background(), f))
	require.NoError(t, s.Seed(context.Background(), f))

	count := func(m interface{}) int64 {
		var n int64
		require.NoError(t, db.Model(m).Count(&n).Error)
		return n
	}
	assert.Equal(t, int64(1), count(&model.Organization{}))
	assert.Equal(t, int64(2), count(&model.Department{}))
	assert.Equal(t, int64(3), count(&model.Shift{}))
	assert.Equal(t, int64(1), count(&model.Geofence{}))
	assert.Equal(t, int64(4), count(&model.GeofencePoint{}))
	assert.Equal(t, int64(1), count(&model.Supervisor{}))
	assert.Equal(t, int64(1), count(&model.WebUser{}))

	var night model.Shift
	require.NoError(t, db.Where("code = ?", "night").First(&night).Error)
	assert.Equal(t, "22:00:00", night.StartTime)
	assert.Len(t, hook.AllEntries(), 2)
}

func TestSeedRejectsDegenerateShift(t *testing.T) {
	db := testutil.NewDB(t)
	log, _ := logtest.NewNullLogger()
	f, err := ParseFixture([]byte(`
organizations:
  - code: MUNI02
    name: Otra
    shifts:
      - code: broken
        start_time: "08:00"
        end_time: "08:00"
`))
	require.NoError(t, err)
	assert.Error(t, NewSeeder(db, log).Seed(context.Background(), f))
}
