package appointment

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type View string

const (
	ViewDay   View = "day"
	ViewWeek  View = "week"
	ViewMonth View = "month"
)

var statusColors = map[Status]string{
	StatusScheduled:  "#3b82f6",
	StatusConfirmed:  "#10b981",
	StatusInProgress: "#eab308",
	StatusCompleted:  "#22c55e",
	StatusCancelled:  "#ef4444",
	StatusNoShow:     "#f97316",
}

func Color(s Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return statusColors[StatusScheduled]
}

// VisibleRange returns the half-open interval a calendar view shows around anchor,
// in anchor's location. Weeks start on Sunday.
func VisibleRange(view View, anchor time.Time) (time.Time, time.Time, error) {
	day := timezone.StartOfDay(anchor)

	switch view {
	case ViewDay, "":
		return day, day.AddDate(0, 0, 1), nil
	case ViewWeek:
		from := day.AddDate(0, 0, -int(day.Weekday()))
		return from, from.AddDate(0, 0, 7), nil
	case ViewMonth:
		from := timezone.StartOfMonth(day)
		return from, from.AddDate(0, 1, 0), nil
	}
	return time.Time{}, time.Time{}, httperr.ErrBusiness("invalid_view")
}

type Event struct {
	ID                  uint            `json:"id"`
	Title               string          `json:"title"`
	Start               time.Time       `json:"start"`
	End                 time.Time       `json:"end"`
	ClientName          string          `json:"client_name"`
	ServiceName         string          `json:"service_name"`
	BarberID            uint            `json:"barber_id"`
	BarberName          string          `json:"barber_name"`
	Status              Status          `json:"status"`
	Color               string          `json:"color"`
	Price               decimal.Decimal `json:"price"`
	Overlaps            bool            `json:"overlaps"`
	OutsideWorkingHours bool            `json:"outside_working_hours"`
}

// BuildEvents maps appointments to calendar events in loc. Overlap and
// working-hours flags are informational and never block anything.
func BuildEvents(appts []models.Appointment, hours map[uint]models.WorkingHours, loc *time.Location) []Event {
	events := make([]Event, 0, len(appts))
	for _, ap := range appts {
		client, service, barber := "Cliente", "Serviço", "Barbeiro"
		if ap.Client != nil && ap.Client.Name != "" {
			client = ap.Client.Name
		}
		if ap.Service != nil && ap.Service.Name != "" {
			service = ap.Service.Name
		}
		if ap.Barber != nil && ap.Barber.FullName != "" {
			barber = ap.Barber.FullName
		}

		start, end := ap.StartTime.In(loc), ap.EndTime.In(loc)
		status := Status(ap.Status)

		ev := Event{
			ID:          ap.ID,
			Title:       client + " - " + service,
			Start:       start,
			End:         end,
			ClientName:  client,
			ServiceName: service,
			BarberID:    ap.BarberID,
			BarberName:  barber,
			Status:      status,
			Color:       Color(status),
			Price:       ap.Price,
		}
		if wh, ok := hours[ap.BarberID]; ok && blocksTime(status) {
			ev.OutsideWorkingHours = !WithinWorkingHours(wh, start, end)
		}
		events = append(events, ev)
	}

	flagOverlaps(events)
	return events
}

// blocksTime reports whether an appointment in s still occupies the barber.
func blocksTime(s Status) bool {
	return s != StatusCancelled && s != StatusNoShow
}

func flagOverlaps(events []Event) {
	idx := make([]int, 0, len(events))
	for i := range events {
		if blocksTime(events[i].Status) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ea, eb := events[idx[a]], events[idx[b]]
		if ea.BarberID != eb.BarberID {
			return ea.BarberID < eb.BarberID
		}
		return ea.Start.Before(eb.Start)
	})

	for a := 0; a < len(idx); a++ {
		for b := a + 1; b < len(idx); b++ {
			ea, eb := &events[idx[a]], &events[idx[b]]
			if ea.BarberID != eb.BarberID || !eb.Start.Before(ea.End) {
				break
			}
			ea.Overlaps = true
			eb.Overlaps = true
		}
	}
}

type DaySummary struct {
	Total     int             `json:"total"`
	Confirmed int             `json:"confirmed"`
	Completed int             `json:"completed"`
	Revenue   decimal.Decimal `json:"revenue"`
}

// SummarizeDay folds one day of appointments. Revenue counts completed ones only.
func SummarizeDay(appts []models.Appointment) DaySummary {
	sum := DaySummary{Revenue: decimal.Zero}
	for _, ap := range appts {
		sum.Total++
		switch Status(ap.Status) {
		case StatusConfirmed:
			sum.Confirmed++
		case StatusCompleted:
			sum.Completed++
			sum.Revenue = sum.Revenue.Add(ap.Price)
		}
	}
	return sum
}
