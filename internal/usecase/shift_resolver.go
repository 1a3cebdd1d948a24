package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/apperror"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/model"
	"github.com/jhulmar98/SISTEMA-INTEGRAL/internal/repository"
)

// TimeOfDay counts seconds since local midnight.
type TimeOfDay int

const secondsPerDay = 24 * 60 * 60

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q", s)
	}

	limits := []int{23, 59, 59}
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || len(p) != 2 || n < 0 || n > limits[i] {
			return 0, fmt.Errorf("invalid time of day %q", s)
		}
		total = total*60 + n
	}
	if len(parts) == 2 {
		total *= 60
	}
	return TimeOfDay(total), nil
}

// TimeOfDayOf returns the wall-clock time of t in its own location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(h*3600 + m*60 + s)
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", int(t)/3600, int(t)/60%60, int(t)%60)
}

// Window is a daily interval, inclusive at both ends. Start after End wraps
// past midnight; Start equal to End matches nothing.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) Contains(t TimeOfDay) bool {
	switch {
	case w.Start < w.End:
		return w.Start <= t && t <= w.End
	case w.Start > w.End:
		return t >= w.Start || t <= w.End
	default:
		return false
	}
}

func (w Window) Degenerate() bool { return w.Start == w.End }

func ShiftWindow(s model.Shift) (Window, error) {
	start, err := ParseTimeOfDay(s.StartTime)
	if err != nil {
		return Window{}, err
	}
	end, err := ParseTimeOfDay(s.EndTime)
	if err != nil {
		return Window{}, err
	}
	return Window{Start: start, End: end}, nil
}

// ResolveShift returns the first shift, in slice order, whose window holds
// at. Shifts with unreadable times are skipped.
func ResolveShift(shifts []model.Shift, at TimeOfDay) (*model.Shift, bool) {
	for i := range shifts {
		w, err := ShiftWindow(shifts[i])
		if err != nil {
			continue
		}
		if w.Contains(at) {
			return &shifts[i], true
		}
	}
	return nil, false
}

// ShiftResolver looks up the shift in force for an organization.
type ShiftResolver struct{}

// Resolve reads the organization's active shifts through repo, so callers
// inside a transaction pass the transactional repository. A miss is the
// no_active_shift rejection.
func (ShiftResolver) Resolve(ctx context.Context, repo repository.ShiftRepository, orgID uint, at TimeOfDay) (*model.Shift, error) {
	shifts, err := repo.ListActive(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	shift, ok := ResolveShift(shifts, at)
	if !ok {
		return nil, apperror.NoActiveShift()
	}
	return shift, nil
}
