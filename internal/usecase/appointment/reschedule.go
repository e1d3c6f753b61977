package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
	"github.com/BruksfildServices01/barber-backoffice/internal/readcache"
	"github.com/BruksfildServices01/barber-backoffice/internal/timezone"
)

type RescheduleInput struct {
	AppointmentID uint
	StartTime     string
	EndTime       string
}

// RescheduleAppointment moves an appointment as dropped on the calendar.
// The new interval is written as-is; it is not checked against other bookings.
type RescheduleAppointment struct {
	repo  domain.Repository
	cache readcache.Cache
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(repo domain.Repository, cache readcache.Cache, audit *audit.Dispatcher) *RescheduleAppointment {
	return &RescheduleAppointment{repo: repo, cache: cache, audit: audit}
}

func (uc *RescheduleAppointment) Execute(ctx context.Context, actor authz.Actor, in RescheduleInput) (*models.Appointment, error) {
	org, err := uc.repo.GetOrganization(ctx, actor.OrganizationID)
	if err != nil {
		return nil, err
	}

	start, err := timezone.ParseLocal(in.StartTime, org.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_start_time")
	}
	end, err := timezone.ParseLocal(in.EndTime, org.Timezone)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_end_time")
	}

	ap, err := uc.repo.Get(ctx, org.ID, in.AppointmentID)
	if err != nil {
		return nil, err
	}
	if !actor.CanActOn(ap.BarberID) {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	previous := map[string]any{"start_time": ap.StartTime, "end_time": ap.EndTime}
	if err := domain.Reschedule(ap, start, end); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateTimes(ctx, ap); err != nil {
		return nil, err
	}

	readcache.Forget(ctx, uc.cache, org.ID, readcache.Appointments, readcache.Finance, readcache.Dashboard)

	uc.audit.Dispatch(audit.Event{
		OrganizationID: org.ID,
		ProfileID:      actor.ProfileRef(),
		Action:         "appointment_rescheduled",
		Entity:         "appointment",
		EntityID:       &ap.ID,
		Metadata:       map[string]any{"previous": previous, "start_time": ap.StartTime, "end_time": ap.EndTime},
	})

	return ap, nil
}
