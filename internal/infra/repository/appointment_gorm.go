package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-backoffice/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-backoffice/internal/httperr"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Organization
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrganization(ctx context.Context, organizationID uint) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).First(&org, organizationID).Error; err != nil {
		return nil, notFound(err, "organization_not_found")
	}
	return &org, nil
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClient(ctx context.Context, organizationID, clientID uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", clientID, organizationID).
		First(&client).Error; err != nil {
		return nil, notFound(err, "client_not_found")
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetService(ctx context.Context, organizationID, serviceID uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", serviceID, organizationID).
		First(&svc).Error; err != nil {
		return nil, notFound(err, "service_not_found")
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetProfile(ctx context.Context, organizationID, profileID uint) (*models.Profile, error) {
	var p models.Profile
	if err := r.db.WithContext(ctx).
		Where("id = ? AND organization_id = ?", profileID, organizationID).
		First(&p).Error; err != nil {
		return nil, notFound(err, "barber_not_found")
	}
	return &p, nil
}

func (r *AppointmentGormRepository) ListProfiles(ctx context.Context, organizationID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("full_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) Get(ctx context.Context, organizationID, appointmentID uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.withRefs(ctx).
		Where("appointments.id = ? AND appointments.organization_id = ?", appointmentID, organizationID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, "appointment_not_found")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) List(ctx context.Context, organizationID uint, f domain.Filter) ([]models.Appointment, error) {
	q := r.withRefs(ctx).Where("appointments.organization_id = ?", organizationID)

	if f.BarberID != 0 {
		q = q.Where("appointments.barber_id = ?", f.BarberID)
	}
	if f.Status != "" {
		q = q.Where("appointments.status = ?", string(f.Status))
	}
	if !f.From.IsZero() {
		q = q.Where("appointments.start_time >= ?", f.From.UTC())
	}
	if !f.To.IsZero() {
		q = q.Where("appointments.start_time < ?", f.To.UTC())
	}

	var apps []models.Appointment
	if err := q.Order("appointments.start_time ASC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *AppointmentGormRepository) UpdateTimes(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND organization_id = ?", ap.ID, ap.OrganizationID).
		Updates(map[string]any{
			"start_time": ap.StartTime.UTC(),
			"end_time":   ap.EndTime.UTC(),
		}).Error
}

func (r *AppointmentGormRepository) UpdateStatus(ctx context.Context, ap *models.Appointment, from domain.Status) error {
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND organization_id = ? AND status = ?", ap.ID, ap.OrganizationID, string(from)).
		Update("status", ap.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_transition")
	}
	return nil
}

func (r *AppointmentGormRepository) withRefs(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Barber")
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)
