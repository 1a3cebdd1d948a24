// Package testutil provides a throwaway SQLite database and a settable clock
// for tests that exercise the repositories for real.
package testutil

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in t.TempDir(). A single
// connection is used so concurrent writers queue instead of failing with
// SQLITE_BUSY.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

// Clock is a manually driven clock.
type Clock struct {
	mu  sync.Mutex
	now time.Time
	loc *time.Location
}

// NewClock starts at the given wall time in loc.
func NewClock(loc *time.Location, year int, month time.Month, day, hour, min, sec int) *Clock {
	return &Clock{now: time.Date(year, month, day, hour, min, sec, 0, loc), loc: loc}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *Clock) Location() *time.Location { return c.loc }

func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// Lima is the fixed UTC-5 zone used by fixtures.
var Lima = time.FixedZone("PET", -5*60*60)
