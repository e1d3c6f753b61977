package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/validators"
)

// WeekdayKey is the working-hours map key for t's weekday.
func WeekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String())
}

// WithinWorkingHours reports whether [start,end) falls inside the barber's hours
// for that day, in start's location. Advisory only; bookings are never refused on it.
func WithinWorkingHours(wh models.WorkingHours, start, end time.Time) bool {
	day, ok := wh[WeekdayKey(start)]
	if !ok || day == nil {
		return false
	}

	from, ok1 := validators.ParseClock(day.Start)
	to, ok2 := validators.ParseClock(day.End)
	if !ok1 || !ok2 {
		return false
	}

	end = end.In(start.Location())
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}

	s := start.Hour()*60 + start.Minute()
	e := end.Hour()*60 + end.Minute()
	return s >= from && e <= to
}
