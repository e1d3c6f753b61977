package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// New builds an appointment for a service starting at start. The end time and
// price are derived from the service as it is now; the status is always the initial one.
func New(
	organizationID uint,
	client *models.Client,
	service *models.Service,
	barber *models.Profile,
	start time.Time,
	notes string,
) *models.Appointment {
	start = start.UTC()
	return &models.Appointment{
		OrganizationID: organizationID,
		ClientID:       client.ID,
		ServiceID:      service.ID,
		BarberID:       barber.ID,
		StartTime:      start,
		EndTime:        start.Add(time.Duration(service.DurationMinutes) * time.Minute),
		Price:          service.Price,
		Status:         string(InitialStatus()),
		Notes:          notes,
	}
}

// Reschedule overwrites the interval. Overlaps with other appointments are not checked.
func Reschedule(ap *models.Appointment, start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrBusiness("invalid_time_range")
	}
	ap.StartTime = start.UTC()
	ap.EndTime = end.UTC()
	return nil
}

// ChangeStatus applies a transition and returns the previous status.
func ChangeStatus(ap *models.Appointment, to Status) (Status, error) {
	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return from, err
	}
	ap.Status = string(to)
	return from, nil
}
