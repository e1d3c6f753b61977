package timezone

import (
	"strings"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

const (
	localDateTimeLayout = "2006-01-02T15:04"
	DateLayout          = "2006-01-02"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone for empty or unknown names.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseLocal reads a naive "YYYY-MM-DDTHH:MM" (seconds optional) as wall time in tz.
// Values carrying an explicit offset are honoured as-is.
func ParseLocal(value, tz string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if len(value) == len("2006-01-02T15:04:05") {
		return time.ParseInLocation("2006-01-02T15:04:05", value, Location(tz))
	}
	return time.ParseInLocation(localDateTimeLayout, value, Location(tz))
}

// ParseDate reads "YYYY-MM-DD" as midnight in tz.
func ParseDate(value, tz string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(value), Location(tz))
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func StartOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
