package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type CalendarInput struct {
	View     string
	Date     string
	BarberID uint
	Status   string
}

type CalendarOutput struct {
	View   domain.View    `json:"view"`
	From   time.Time      `json:"from"`
	To     time.Time      `json:"to"`
	Events []domain.Event `json:"events"`
}

type GetCalendar struct {
	repo  domain.Repository
	cache readcache.Cache
}

func NewGetCalendar(repo domain.Repository, cache readcache.Cache) *GetCalendar {
	return &GetCalendar{repo: repo, cache: cache}
}

func (uc *GetCalendar) Execute(ctx context.Context, actor authz.Actor, in CalendarInput) (*CalendarOutput, error) {
	org, err := uc.repo.GetOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}
	loc := timezone.Location(org.Timezone)

	anchor := time.Now().In(loc)
	if in.Date != "" {
		if anchor, err = timezone.ParseDate(in.Date, org.Timezone); err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
	}

	view := domain.View(in.View)
	if view == "" {
		view = domain.ViewWeek
	}
	from, to, err := domain.VisibleRange(view, anchor)
	if err != nil {
		return nil, err
	}

	f := domain.Scope(actor, domain.Filter{
		BarberID: in.BarberID,
		Status:   domain.ParseStatusFilter(in.Status),
		From:     from,
		To:       to,
	})

	key := readcache.Key(org.ID, readcache.Appointments, "calendar", view, f.BarberID, f.Status, from.Unix())
	tags := readcache.Tags(org.ID, readcache.Appointments, readcache.Staff)

	return readcache.Remember(ctx, uc.cache, key, tags, func() (*CalendarOutput, error) {
		apps, err := uc.repo.List(ctx, org.ID, f)
		if err != nil {
			return nil, err
		}
		profiles, err := uc.repo.ListProfiles(ctx, org.ID)
		if err != nil {
			return nil, err
		}

		hours := make(map[uint]models.WorkingHours, len(profiles))
		for _, p := range profiles {
			if wh := p.WorkingHours.Data(); wh != nil {
				hours[p.ID] = wh
			}
		}

		return &CalendarOutput{
			View:   view,
			From:   from,
			To:     to,
			Events: domain.BuildEvents(apps, hours, loc),
		}, nil
	})
}
