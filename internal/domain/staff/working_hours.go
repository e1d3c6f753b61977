package staff

import (
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/validators"
)

const (
	DefaultStart = "09:00"
	DefaultEnd   = "18:00"
)

// Weekdays in display order.
var Weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func IsWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}

func ValidateDay(h models.DayHours) error {
	start, ok1 := validators.ParseClock(h.Start)
	end, ok2 := validators.ParseClock(h.End)
	if !ok1 || !ok2 || start >= end {
		return httperr.ErrBusiness("invalid_working_hours")
	}
	return nil
}

// Normalize validates a full map and fills missing weekdays as days off.
func Normalize(wh models.WorkingHours) (models.WorkingHours, error) {
	out := make(models.WorkingHours, len(Weekdays))
	for day, h := range wh {
		if !IsWeekday(day) {
			return nil, httperr.ErrBusiness("invalid_weekday")
		}
		if h == nil {
			continue
		}
		if err := ValidateDay(*h); err != nil {
			return nil, err
		}
		cp := *h
		out[day] = &cp
	}
	for _, day := range Weekdays {
		if _, ok := out[day]; !ok {
			out[day] = nil
		}
	}
	return out, nil
}

// Toggle turns a day off, or on with the default 09:00–18:00 interval.
// Turning a day back on never restores the hours it had before.
func Toggle(wh models.WorkingHours, day string) (models.WorkingHours, error) {
	if !IsWeekday(day) {
		return nil, httperr.ErrBusiness("invalid_weekday")
	}
	out := clone(wh)
	if out[day] != nil {
		out[day] = nil
	} else {
		out[day] = &models.DayHours{Start: DefaultStart, End: DefaultEnd}
	}
	return out, nil
}

// SetDay replaces one day's interval.
func SetDay(wh models.WorkingHours, day string, h models.DayHours) (models.WorkingHours, error) {
	if !IsWeekday(day) {
		return nil, httperr.ErrBusiness("invalid_weekday")
	}
	if err := ValidateDay(h); err != nil {
		return nil, err
	}
	out := clone(wh)
	out[day] = &h
	return out, nil
}

func clone(wh models.WorkingHours) models.WorkingHours {
	out := make(models.WorkingHours, len(Weekdays))
	for _, day := range Weekdays {
		out[day] = nil
	}
	for day, h := range wh {
		if h != nil {
			cp := *h
			out[day] = &cp
		}
	}
	return out
}

func IsRole(role string) bool {
	return role == models.RoleAdmin || role == models.RoleBarber
}

func ValidateCommission(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return httperr.ErrBusiness("invalid_commission")
	}
	return nil
}
