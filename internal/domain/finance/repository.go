package finance

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

// Range bounds are half-open; zero times leave that side open.
type Range struct {
	From time.Time
	To   time.Time
}

type Repository interface {
	Timezone(ctx context.Context, organizationID uint) (string, error)
	ListAppointments(ctx context.Context, organizationID uint, status string, r Range) ([]models.Appointment, error)
	CountAppointments(ctx context.Context, organizationID uint, status string, r Range) (int64, error)
	ListExpenses(ctx context.Context, organizationID uint, status string, due Range) ([]models.Expense, error)
	ListProfiles(ctx context.Context, organizationID uint) ([]models.Profile, error)
	CountClients(ctx context.Context, organizationID uint) (int64, error)
}
