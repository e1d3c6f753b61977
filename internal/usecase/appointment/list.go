package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-backoffice/internal/dto"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type ListInput struct {
	BarberID uint
	Status   string
	// From and To are inclusive calendar dates (YYYY-MM-DD) in the organization timezone.
	From string
	To   string
}

type ListAppointments struct {
	repo  domain.Repository
	cache readcache.Cache
}

func NewListAppointments(repo domain.Repository, cache readcache.Cache) *ListAppointments {
	return &ListAppointments{repo: repo, cache: cache}
}

func (uc *ListAppointments) Execute(ctx context.Context, actor authz.Actor, in ListInput) ([]dto.AppointmentListDTO, error) {
	org, err := uc.repo.GetOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	f := domain.Filter{
		BarberID: in.BarberID,
		Status:   domain.ParseStatusFilter(in.Status),
	}
	if in.From != "" {
		if f.From, err = timezone.ParseDate(in.From, org.Timezone); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}
	if in.To != "" {
		to, err := timezone.ParseDate(in.To, org.Timezone)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		f.To = to.AddDate(0, 0, 1)
	}
	f = domain.Scope(actor, f)

	key := readcache.Key(actor.OrganizationID, readcache.Appointments, "list",
		f.BarberID, f.Status, unix(f.From), unix(f.To))

	return readcache.Remember(ctx, uc.cache, key, readcache.Tags(actor.OrganizationID, readcache.Appointments),
		func() ([]dto.AppointmentListDTO, error) {
			apps, err := uc.repo.List(ctx, actor.OrganizationID, f)
			if err != nil {
				return nil, err
			}
			return dto.NewAppointmentList(apps, timezone.Location(org.Timezone)), nil
		})
}

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
