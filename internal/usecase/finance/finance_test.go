package finance

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/infra/repository"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/testutil"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGetSummary(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	loc := timezone.Location("America/Sao_Paulo")
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, loc)

	org := testutil.Organization(t, db, "Navalha")
	admin := testutil.Profile(t, db, org.ID, "Admin", "admin")
	barber := testutil.Profile(t, db, org.ID, "Bruno", "barber")
	require.NoError(t, db.Model(barber).Update("commission_rate", "30").Error)

	client := testutil.Client(t, db, org.ID, "Ana")
	service := testutil.Service(t, db, org.ID, "Corte", "100.00", 30)

	testutil.Appointment(t, db, org.ID, client.ID, service.ID, barber.ID, time.Date(2025, 3, 15, 10, 0, 0, 0, loc), 30, "completed", "100.00")
	testutil.Appointment(t, db, org.ID, client.ID, service.ID, barber.ID, time.Date(2025, 3, 15, 11, 0, 0, 0, loc), 30, "scheduled", "100.00")

	require.NoError(t, db.Create(&models.Expense{
		OrganizationID: org.ID, Name: "Aluguel", Amount: dec("50.00"),
		DueDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Status: models.ExpenseStatusPending, Category: "aluguel",
	}).Error)
	require.NoError(t, db.Create(&models.Expense{
		OrganizationID: org.ID, Name: "Luz", Amount: dec("20.00"),
		DueDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Status: models.ExpenseStatusPaid, Category: "luz",
	}).Error)

	uc := NewGetSummary(repository.NewFinanceGormRepository(db), readcache.NewMemory(time.Minute))
	uc.now = func() time.Time { return now }

	actor := authz.Actor{OrganizationID: org.ID, ProfileID: admin.ID, Role: "admin"}
	out, err := uc.Execute(ctx, actor)
	require.NoError(t, err)

	assert.True(t, out.TodayRevenue.Equal(dec("100")), out.TodayRevenue.String())
	assert.True(t, out.PendingExpenses.Equal(dec("50")))
	assert.True(t, out.PaidExpenses.Equal(dec("20")))
	assert.Equal(t, 1, out.PendingCount)
	assert.True(t, out.EstimatedProfit.Equal(dec("50")), out.EstimatedProfit.String())

	require.Len(t, out.Commissions, 2)
	assert.Equal(t, "Admin", out.Commissions[0].FullName)
	assert.True(t, out.Commissions[0].Commission.IsZero())
	assert.Equal(t, "Bruno", out.Commissions[1].FullName)
	assert.True(t, out.Commissions[1].Commission.Equal(dec("30")), out.Commissions[1].Commission.String())
	assert.True(t, out.CommissionTotal.Equal(dec("30")))

	require.Len(t, out.Trend, 6)
	last := out.Trend[5]
	assert.Equal(t, "2025-03", last.Month)
	assert.Equal(t, "mar/25", last.Label)
	assert.True(t, last.Revenue.Equal(dec("100")))
	assert.True(t, last.Expenses.Equal(dec("20")))
	assert.True(t, last.Profit.Equal(dec("80")))
}

func TestGetSummary_AdminOnly(t *testing.T) {
	db := testutil.NewDB(t)
	org := testutil.Organization(t, db, "Navalha")
	barber := testutil.Profile(t, db, org.ID, "Bruno", "barber")

	uc := NewGetSummary(repository.NewFinanceGormRepository(db), readcache.NewMemory(time.Minute))
	_, err := uc.Execute(context.Background(), authz.Actor{OrganizationID: org.ID, ProfileID: barber.ID, Role: "barber"})

	code, ok := httperr.BusinessCode(err)
	require.True(t, ok)
	assert.Equal(t, "access_restricted", code)
}

func TestGetDashboard(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	loc := timezone.Location("America/Sao_Paulo")
	now := time.Date(2025, 3, 15, 15, 0, 0, 0, loc)

	org := testutil.Organization(t, db, "Navalha")
	barber := testutil.Profile(t, db, org.ID, "Bruno", "barber")
	client := testutil.Client(t, db, org.ID, "Ana")
	testutil.Client(t, db, org.ID, "Beatriz")
	service := testutil.Service(t, db, org.ID, "Corte", "40.00", 30)

	testutil.Appointment(t, db, org.ID, client.ID, service.ID, barber.ID, time.Date(2025, 3, 2, 10, 0, 0, 0, loc), 30, "completed", "40.00")
	testutil.Appointment(t, db, org.ID, client.ID, service.ID, barber.ID, time.Date(2025, 3, 15, 14, 30, 0, 0, loc), 30, "in_progress", "40.00")
	testutil.Appointment(t, db, org.ID, client.ID, service.ID, barber.ID, time.Date(2025, 3, 15, 17, 0, 0, 0, loc), 30, "scheduled", "40.00")
	testutil.Appointment(t, db, org.ID, client.ID, service.ID, barber.ID, time.Date(2025, 2, 27, 10, 0, 0, 0, loc), 30, "completed", "40.00")

	uc := NewGetDashboard(repository.NewFinanceGormRepository(db), readcache.NewMemory(time.Minute))
	uc.now = func() time.Time { return now }

	out, err := uc.Execute(ctx, authz.Actor{OrganizationID: org.ID, ProfileID: barber.ID, Role: "barber"})
	require.NoError(t, err)

	assert.True(t, out.MonthRevenue.Equal(dec("40")), out.MonthRevenue.String())
	assert.EqualValues(t, 2, out.TodayAppointments)
	assert.EqualValues(t, 1, out.InProgress)
	assert.EqualValues(t, 2, out.Clients)
}
