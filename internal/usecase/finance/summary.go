package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/finance"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type Summary struct {
	TodayRevenue    decimal.Decimal           `json:"today_revenue"`
	PendingExpenses decimal.Decimal           `json:"pending_expenses"`
	PaidExpenses    decimal.Decimal           `json:"paid_expenses"`
	TotalExpenses   decimal.Decimal           `json:"total_expenses"`
	PendingCount    int                       `json:"pending_count"`
	EstimatedProfit decimal.Decimal           `json:"estimated_profit"`
	Commissions     []domain.BarberCommission `json:"commissions"`
	CommissionTotal decimal.Decimal           `json:"commission_total"`
	Trend           []domain.MonthPoint       `json:"trend"`
}

type GetSummary struct {
	repo  domain.Repository
	cache readcache.Cache
	now   func() time.Time
}

func NewGetSummary(repo domain.Repository, cache readcache.Cache) *GetSummary {
	return &GetSummary{repo: repo, cache: cache, now: time.Now}
}

func (uc *GetSummary) Execute(ctx context.Context, actor authz.Actor) (*Summary, error) {
	if !actor.IsAdmin() {
		return nil, httperr.ErrBusiness("access_restricted")
	}

	tz, err := uc.repo.Timezone(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	now := uc.now().In(timezone.Location(tz))
	today := timezone.StartOfDay(now)

	key := readcache.Key(actor.OrganizationID, readcache.Finance, "summary", today.Format(timezone.DateLayout))
	tags := readcache.Tags(actor.OrganizationID, readcache.Finance, readcache.Expenses, readcache.Staff)

	return readcache.Remember(ctx, uc.cache, key, tags, func() (*Summary, error) {
		return uc.load(ctx, actor.OrganizationID, now)
	})
}

func (uc *GetSummary) load(ctx context.Context, orgID uint, now time.Time) (*Summary, error) {
	today := timezone.StartOfDay(now)

	todayDone, err := uc.repo.ListAppointments(ctx, orgID, "completed", domain.Range{From: today, To: today.AddDate(0, 0, 1)})
	if err != nil {
		return nil, err
	}

	expenses, err := uc.repo.ListExpenses(ctx, orgID, "", domain.Range{})
	if err != nil {
		return nil, err
	}

	profiles, err := uc.repo.ListProfiles(ctx, orgID)
	if err != nil {
		return nil, err
	}

	window, err := uc.repo.ListAppointments(ctx, orgID, "completed", domain.Range{
		From: now.AddDate(0, 0, -domain.CommissionWindowDays),
		To:   now,
	})
	if err != nil {
		return nil, err
	}

	trendAppts, err := uc.repo.ListAppointments(ctx, orgID, "completed", domain.Range{
		From: domain.TrendStart(now),
		To:   timezone.StartOfMonth(now).AddDate(0, 1, 0),
	})
	if err != nil {
		return nil, err
	}

	revenue := domain.RevenueOf(todayDone)
	totals := domain.TotalsOf(expenses)
	commissions, commissionTotal := domain.Commissions(profiles, window)

	return &Summary{
		TodayRevenue:    revenue,
		PendingExpenses: totals.Pending,
		PaidExpenses:    totals.Paid,
		TotalExpenses:   totals.Total(),
		PendingCount:    totals.PendingCount,
		EstimatedProfit: domain.EstimatedProfit(revenue, totals),
		Commissions:     commissions,
		CommissionTotal: commissionTotal,
		Trend:           domain.Trend(now, trendAppts, expenses),
	}, nil
}
