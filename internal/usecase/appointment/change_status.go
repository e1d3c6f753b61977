package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/metrics"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
)

type ChangeStatus struct {
	repo  domain.Repository
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewChangeStatus(repo domain.Repository, cache readcache.Cache, audit *audit.Dispatcher) *ChangeStatus {
	return &ChangeStatus{repo: repo, cache: cache, audit: audit}
}

func (uc *ChangeStatus) Execute(ctx context.Context, actor authz.Actor, appointmentID uint, to string) (*models.Appointment, error) {
	target := domain.Status(to)
	if !target.Valid() {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.Get(ctx, actor.OrganizationID, appointmentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOn(ap.BarberID) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	from, err := domain.ChangeStatus(ap, target)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, ap, from); err != nil {
		return nil, err
	}

	readcache.Forget(ctx, uc.cache, actor.OrganizationID, readcache.Appointments, readcache.Finance, readcache.Dashboard)
	metrics.RecordStatusTransition(string(from), string(target))

	uc.audit.Dispatch(audit.Event{
		OrganizationID: actor.OrganizationID,
		ProfileID:      actor.ProfileRef(),
		Action:         "appointment_status_changed",
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata:       map[string]any{"from": from, "to": target},
	})

	return ap, nil
}
