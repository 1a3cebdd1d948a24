package usecase

import "time"

// Clock supplies the current instant and the zone that defines the
// business day. Instants are stored in UTC; dates and times of day shown to
// people are taken in Location.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

func NewSystemClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time           { return time.Now() }
func (c systemClock) Location() *time.Location { return c.loc }

// dayBounds returns [start, end) of the local calendar day named by day
// (YYYY-MM-DD). An empty day means today.
func dayBounds(clock Clock, day string) (time.Time, time.Time, error) {
	loc := clock.Location()
	var start time.Time
	if day == "" {
		y, m, d := clock.Now().In(loc).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	} else {
		t, err := time.ParseInLocation(dateLayout, day, loc)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	return start, start.AddDate(0, 0, 1), nil
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05"
)
