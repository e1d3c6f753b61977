// Package finance holds the pure folds behind the financial summary.
// Every function is deterministic over its inputs.
package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

const (
	CommissionWindowDays = 30
	TrendMonths          = 6
)

var hundred = decimal.NewFromInt(100)

var monthLabels = [...]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

// RevenueOf sums the price of completed appointments.
func RevenueOf(appts []models.Appointment) decimal.Decimal {
	total := decimal.Zero
	for _, ap := range appts {
		if ap.Status == "completed" {
			total = total.Add(ap.Price)
		}
	}
	return total
}

type ExpenseTotals struct {
	Pending      decimal.Decimal `json:"pending_expenses"`
	Paid         decimal.Decimal `json:"paid_expenses"`
	PendingCount int             `json:"pending_count"`
}

func (t ExpenseTotals) Total() decimal.Decimal {
	return t.Pending.Add(t.Paid)
}

func TotalsOf(expenses []models.Expense) ExpenseTotals {
	t := ExpenseTotals{Pending: decimal.Zero, Paid: decimal.Zero}
	for _, e := range expenses {
		switch e.Status {
		case models.ExpenseStatusPending:
			t.Pending = t.Pending.Add(e.Amount)
			t.PendingCount++
		case models.ExpenseStatusPaid:
			t.Paid = t.Paid.Add(e.Amount)
		}
	}
	return t
}

// EstimatedProfit is today's revenue minus every pending expense regardless of due date.
// The two sides cover different periods; the dashboard has always shown it this way.
func EstimatedProfit(todayRevenue decimal.Decimal, totals ExpenseTotals) decimal.Decimal {
	return todayRevenue.Sub(totals.Pending)
}

type BarberCommission struct {
	ProfileID        uint            `json:"profile_id"`
	FullName         string          `json:"full_name"`
	CommissionRate   decimal.Decimal `json:"commission_rate"`
	Revenue          decimal.Decimal `json:"revenue"`
	AppointmentCount int             `json:"appointment_count"`
	Commission       decimal.Decimal `json:"commission"`
}

// Commissions computes revenue × rate/100 per profile over completed appointments.
// Output follows the order of profiles; profiles with no work get zero rows.
func Commissions(profiles []models.Profile, completed []models.Appointment) ([]BarberCommission, decimal.Decimal) {
	byBarber := make(map[uint][]models.Appointment)
	for _, ap := range completed {
		if ap.Status == "completed" {
			byBarber[ap.BarberID] = append(byBarber[ap.BarberID], ap)
		}
	}

	out := make([]BarberCommission, 0, len(profiles))
	total := decimal.Zero
	for _, p := range profiles {
		rate := p.Commission()
		revenue := RevenueOf(byBarber[p.ID])
		commission := revenue.Mul(rate).Div(hundred).Round(2)

		out = append(out, BarberCommission{
			ProfileID:        p.ID,
			FullName:         p.FullName,
			CommissionRate:   rate,
			Revenue:          revenue,
			AppointmentCount: len(byBarber[p.ID]),
			Commission:       commission,
		})
		total = total.Add(commission)
	}
	return out, total
}

type MonthPoint struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
}

// TrendStart is the first instant of the oldest month in the trend ending at now.
func TrendStart(now time.Time) time.Time {
	y, m, _ := now.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(TrendMonths - 1), 0)
}

// Trend buckets completed revenue by appointment month and paid expenses by
// due-date month, for the six months ending in now's month, in now's location.
func Trend(now time.Time, appts []models.Appointment, expenses []models.Expense) []MonthPoint {
	loc := now.Location()
	start := TrendStart(now)

	points := make([]MonthPoint, TrendMonths)
	index := make(map[string]int, TrendMonths)
	for i := range points {
		m := start.AddDate(0, i, 0)
		key := m.Format("2006-01")
		index[key] = i
		points[i] = MonthPoint{
			Month:    key,
			Label:    fmt.Sprintf("%s/%02d", monthLabels[m.Month()-1], m.Year()%100),
			Revenue:  decimal.Zero,
			Expenses: decimal.Zero,
		}
	}

	for _, ap := range appts {
		if ap.Status != "completed" {
			continue
		}
		if i, ok := index[ap.StartTime.In(loc).Format("2006-01")]; ok {
			points[i].Revenue = points[i].Revenue.Add(ap.Price)
		}
	}
	for _, e := range expenses {
		if e.Status != models.ExpenseStatusPaid {
			continue
		}
		// due_date is a calendar date; read it without shifting zones.
		if i, ok := index[e.DueDate.UTC().Format("2006-01")]; ok {
			points[i].Expenses = points[i].Expenses.Add(e.Amount)
		}
	}

	for i := range points {
		points[i].Profit = points[i].Revenue.Sub(points[i].Expenses)
	}
	return points
}
