package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type TodaySummary struct {
	repo  domain.Repository
	cache readcache.Cache
}

func NewTodaySummary(repo domain.Repository, cache readcache.Cache) *TodaySummary {
	return &TodaySummary{repo: repo, cache: cache}
}

// Execute summarizes today's appointments visible to the actor.
func (uc *TodaySummary) Execute(ctx context.Context, actor authz.Actor) (domain.DaySummary, error) {
	org, err := uc.repo.GetOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return domain.DaySummary{}, err
	}

	from, to, _ := domain.VisibleRange(domain.ViewDay, timezone.NowIn(org.Timezone))
	f := domain.Scope(actor, domain.Filter{From: from, To: to})

	key := readcache.Key(org.ID, readcache.Appointments, "today", f.BarberID, from.Unix())
	return readcache.Remember(ctx, uc.cache, key, readcache.Tags(org.ID, readcache.Appointments),
		func() (domain.DaySummary, error) {
			apps, err := uc.repo.List(ctx, org.ID, f)
			if err != nil {
				return domain.DaySummary{}, err
			}
			return domain.SummarizeDay(apps), nil
		})
}
