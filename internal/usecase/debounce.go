package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
)

const DefaultDebounceWindow = 180 * time.Second

// DebounceGuard enforces a minimum spacing between marks of one person. It
// must run inside the transaction and lock that performs the insert.
type DebounceGuard struct {
	Window time.Duration
	// PerOrganization limits the lookup to marks of the same organization.
	// By default any earlier mark of the person counts.
	PerOrganization bool
}

func (g DebounceGuard) window() time.Duration {
	if g.Window <= 0 {
		return DefaultDebounceWindow
	}
	return g.Window
}

// Check returns a too_soon rejection when the person's last mark is less
// than Window before now.
func (g DebounceGuard) Check(ctx context.Context, marks repository.AttendanceRepository, dni string, orgID uint, now time.Time) error {
	scope := uint(0)
	if g.PerOrganization {
		scope = orgID
	}
	last, ok, err := marks.LastCreatedAt(ctx, dni, scope)
	if err != nil {
		return fmt.Errorf("read last mark: %w", err)
	}
	if !ok {
		return nil
	}
	if wait, blocked := g.remaining(last, now); blocked {
		return apperror.TooSoon(wait)
	}
	return nil
}

// remaining reports the whole seconds left until a new mark is allowed.
// A last mark in the future (clock skew) blocks for the full window.
func (g DebounceGuard) remaining(last, now time.Time) (int, bool) {
	window := g.window()
	elapsed := now.Sub(last)
	if elapsed >= window {
		return 0, false
	}
	left := window - elapsed
	if left > window {
		left = window
	}
	secs := int(math.Ceil(left.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return secs, true
}
