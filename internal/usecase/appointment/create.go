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
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	ClientID  uint
	ServiceID uint
	BarberID  uint
	// StartTime is "YYYY-MM-DDTHH:MM" wall time in the organization timezone.
	StartTime string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	cache readcache.Cache,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	actor authz.Actor,
	in CreateInput,
) (*models.Appointment, error) {

	if in.BarberID == 0 {
		in.BarberID = actor.ProfileID
	}
	if !actor.CanActOn(in.BarberID) {
		return nil, httperr.ErrBusiness("access_restricted")
	}

	org, err := uc.repo.GetOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseLocal(in.StartTime, org.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_time")
	}

	client, err := uc.repo.GetClient(ctx, org.ID, in.ClientID)
	if err != nil {
		return nil, err
	}
	service, err := uc.repo.GetService(ctx, org.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	barber, err := uc.repo.GetProfile(ctx, org.ID, in.BarberID)
	if err != nil {
		return nil, err
	}

	ap := domain.New(org.ID, client, service, barber, start, in.Notes)
	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}
	ap.Client, ap.Service, ap.Barber = client, service, barber

	readcache.Forget(ctx, uc.cache, org.ID, readcache.Appointments, readcache.Finance, readcache.Dashboard)
	metrics.RecordAppointmentCreated()

	uc.audit.Dispatch(audit.Event{
		OrganizationID: org.ID,
		ProfileID:      actor.ProfileRef(),
		Action:         "appointment_created",
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata: map[string]any{
			"barber_id":  ap.BarberID,
			"service_id": ap.ServiceID,
			"start_time": ap.StartTime,
		},
	})

	return ap, nil
}
