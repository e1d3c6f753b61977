package appointment

import (
	"context"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

type Repository interface {
	// -------- Organization --------
	GetOrganization(ctx context.Context, organizationID uint) (*models.Organization, error)

	// -------- References --------
	GetClient(ctx context.Context, organizationID, clientID uint) (*models.Client, error)
	GetService(ctx context.Context, organizationID, serviceID uint) (*models.Service, error)
	GetProfile(ctx context.Context, organizationID, profileID uint) (*models.Profile, error)
	ListProfiles(ctx context.Context, organizationID uint) ([]models.Profile, error)

	// -------- Appointment --------
	Create(ctx context.Context, ap *models.Appointment) error
	Get(ctx context.Context, organizationID, appointmentID uint) (*models.Appointment, error)
	List(ctx context.Context, organizationID uint, f Filter) ([]models.Appointment, error)

	UpdateTimes(ctx context.Context, ap *models.Appointment) error

	// UpdateStatus writes ap.Status only if the stored status is still from.
	UpdateStatus(ctx context.Context, ap *models.Appointment, from Status) error
}
