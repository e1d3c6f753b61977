package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
)

// Filter narrows an appointment listing. Zero values mean "no filter".
type Filter struct {
	BarberID uint
	Status   Status
	From     time.Time
	To       time.Time
}

// ParseStatusFilter maps "", "all" and unknown values to no filter.
func ParseStatusFilter(raw string) Status {
	s := Status(strings.TrimSpace(strings.ToLower(raw)))
	if s == "all" || !s.Valid() {
		return ""
	}
	return s
}

// Scope applies the role rule: non-admins only ever see their own appointments,
// whatever barber filter they asked for.
func Scope(actor authz.Actor, f Filter) Filter {
	if !actor.IsAdmin() {
		f.BarberID = actor.ProfileID
	}
	return f
}
