package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCommissions_ThirtyPercentOfCompleted(t *testing.T) {
	profiles := []models.Profile{
		{ID: 1, FullName: "Ana", CommissionRate: decimal.NewNullDecimal(d("30"))},
		{ID: 2, FullName: "Bruno"},
	}
	appts := []models.Appointment{
		{BarberID: 1, Status: "completed", Price: d("60")},
		{BarberID: 1, Status: "completed", Price: d("40")},
		{BarberID: 1, Status: "cancelled", Price: d("500")},
	}

	rows, total := Commissions(profiles, appts)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ana", rows[0].FullName)
	assert.True(t, rows[0].Revenue.Equal(d("100")))
	assert.True(t, rows[0].Commission.Equal(d("30")))
	assert.Equal(t, 2, rows[0].AppointmentCount)

	assert.True(t, rows[1].CommissionRate.IsZero(), "null rate is zero")
	assert.True(t, rows[1].Commission.IsZero())
	assert.True(t, total.Equal(d("30")))
}

func TestCommissions_TwentyPercentOfFiveHundred(t *testing.T) {
	profiles := []models.Profile{{ID: 3, FullName: "Carlos", CommissionRate: decimal.NewNullDecimal(d("20"))}}
	appts := []models.Appointment{
		{BarberID: 3, Status: "completed", Price: d("200")},
		{BarberID: 3, Status: "completed", Price: d("300")},
	}

	rows, total := Commissions(profiles, appts)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Revenue.Equal(d("500")))
	assert.True(t, rows[0].Commission.Equal(d("100")), rows[0].Commission.String())
	assert.True(t, total.Equal(d("100")))
}

func TestEstimatedProfit_TodayMinusAllPending(t *testing.T) {
	today := RevenueOf([]models.Appointment{
		{Status: "completed", Price: d("200")},
		{Status: "scheduled", Price: d("999")},
	})
	totals := TotalsOf([]models.Expense{
		{Status: "pending", Amount: d("150"), DueDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
		{Status: "paid", Amount: d("80")},
	})

	assert.True(t, EstimatedProfit(today, totals).Equal(d("50")))
	assert.Equal(t, 1, totals.PendingCount)
	assert.True(t, totals.Total().Equal(d("230")))
}

func TestFolds_AreIdempotent(t *testing.T) {
	profiles := []models.Profile{{ID: 1, FullName: "Ana", CommissionRate: decimal.NewNullDecimal(d("12.5"))}}
	appts := []models.Appointment{{BarberID: 1, Status: "completed", Price: d("33.33")}}
	expenses := []models.Expense{{Status: "pending", Amount: d("10")}}

	r1, t1 := Commissions(profiles, appts)
	r2, t2 := Commissions(profiles, appts)
	assert.Equal(t, r1, r2)
	assert.True(t, t1.Equal(t2))
	assert.Equal(t, TotalsOf(expenses), TotalsOf(expenses))
}

func TestTrend(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, loc)

	appts := []models.Appointment{
		{Status: "completed", Price: d("100"), StartTime: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)},
		{Status: "completed", Price: d("50"), StartTime: time.Date(2025, 1, 10, 13, 0, 0, 0, time.UTC)},
		// 01:00 UTC on March 1st is still February in São Paulo.
		{Status: "completed", Price: d("20"), StartTime: time.Date(2025, 3, 1, 1, 0, 0, 0, time.UTC)},
		{Status: "cancelled", Price: d("70"), StartTime: time.Date(2025, 6, 2, 13, 0, 0, 0, time.UTC)},
		{Status: "completed", Price: d("999"), StartTime: time.Date(2024, 12, 31, 13, 0, 0, 0, time.UTC)},
	}
	expenses := []models.Expense{
		{Status: "paid", Amount: d("30"), DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{Status: "pending", Amount: d("500"), DueDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	points := Trend(now, appts, expenses)
	require.Len(t, points, 6)

	assert.Equal(t, "2025-01", points[0].Month)
	assert.Equal(t, "jan/25", points[0].Label)
	assert.True(t, points[0].Revenue.Equal(d("50")))

	assert.True(t, points[1].Revenue.Equal(d("20")), "february")
	assert.True(t, points[2].Revenue.IsZero(), "march")

	assert.Equal(t, "2025-06", points[5].Month)
	assert.True(t, points[5].Revenue.Equal(d("100")))
	assert.True(t, points[5].Expenses.Equal(d("30")))
	assert.True(t, points[5].Profit.Equal(d("70")))
}
