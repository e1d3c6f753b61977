package finance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/finance"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type Dashboard struct {
	MonthRevenue      decimal.Decimal `json:"month_revenue"`
	TodayAppointments int64           `json:"today_appointments"`
	InProgress        int64           `json:"in_progress"`
	Clients           int64           `json:"clients"`
}

type GetDashboard struct {
	repo  domain.Repository
	cache readcache.Cache
	now   func() time.Time
}

func NewGetDashboard(repo domain.Repository, cache readcache.Cache) *GetDashboard {
	return &GetDashboard{repo: repo, cache: cache, now: time.Now}
}

// Execute returns organization-wide KPIs; cancelled and no-show rows count toward today's total.
func (uc *GetDashboard) Execute(ctx context.Context, actor authz.Actor) (*Dashboard, error) {
	tz, err := uc.repo.Timezone(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	now := uc.now().In(timezone.Location(tz))
	today := timezone.StartOfDay(now)
	month := timezone.StartOfMonth(now)

	orgID := actor.OrganizationID
	key := readcache.Key(orgID, readcache.Dashboard, today.Format(timezone.DateLayout))
	tags := readcache.Tags(orgID, readcache.Dashboard, readcache.Appointments, readcache.Clients)

	return readcache.Remember(ctx, uc.cache, key, tags, func() (*Dashboard, error) {
		done, err := uc.repo.ListAppointments(ctx, orgID, "completed", domain.Range{From: month, To: month.AddDate(0, 1, 0)})
		if err != nil {
			return nil, err
		}
		todayCount, err := uc.repo.CountAppointments(ctx, orgID, "", domain.Range{From: today, To: today.AddDate(0, 0, 1)})
		if err != nil {
			return nil, err
		}
		inProgress, err := uc.repo.CountAppointments(ctx, orgID, "in_progress", domain.Range{})
		if err != nil {
			return nil, err
		}
		clients, err := uc.repo.CountClients(ctx, orgID)
		if err != nil {
			return nil, err
		}

		return &Dashboard{
			MonthRevenue:      domain.RevenueOf(done),
			TodayAppointments: todayCount,
			InProgress:        inProgress,
			Clients:           clients,
		}, nil
	})
}
