package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-backoffice/internal/domain/finance"
	"github.com/BruksfildServices01/barber-backoffice/internal/models"
)

type FinanceGormRepository struct {
	db *gorm.DB
}

func NewFinanceGormRepository(db *gorm.DB) *FinanceGormRepository {
	return &FinanceGormRepository{db: db}
}

func (r *FinanceGormRepository) Timezone(ctx context.Context, organizationID uint) (string, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).
		Select("id", "timezone").
		First(&org, organizationID).Error; err != nil {
		return "", notFound(err, "organization_not_found")
	}
	return org.Timezone, nil
}

func (r *FinanceGormRepository) appointments(ctx context.Context, organizationID uint, status string, rg finance.Range) *gorm.DB {
	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("organization_id = ?", organizationID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if !rg.From.IsZero() {
		q = q.Where("start_time >= ?", rg.From.UTC())
	}
	if !rg.To.IsZero() {
		q = q.Where("start_time < ?", rg.To.UTC())
	}
	return q
}

func (r *FinanceGormRepository) ListAppointments(ctx context.Context, organizationID uint, status string, rg finance.Range) ([]models.Appointment, error) {
	var apps []models.Appointment
	if err := r.appointments(ctx, organizationID, status, rg).
		Select("id", "barber_id", "price", "status", "start_time").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *FinanceGormRepository) CountAppointments(ctx context.Context, organizationID uint, status string, rg finance.Range) (int64, error) {
	var n int64
	err := r.appointments(ctx, organizationID, status, rg).Count(&n).Error
	return n, err
}

func (r *FinanceGormRepository) ListExpenses(ctx context.Context, organizationID uint, status string, due finance.Range) ([]models.Expense, error) {
	q := r.db.WithContext(ctx).Where("organization_id = ?", organizationID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if !due.From.IsZero() {
		q = q.Where("due_date >= ?", due.From)
	}
	if !due.To.IsZero() {
		q = q.Where("due_date < ?", due.To)
	}

	var rows []models.Expense
	if err := q.Order("due_date ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *FinanceGormRepository) ListProfiles(ctx context.Context, organizationID uint) ([]models.Profile, error) {
	var profiles []models.Profile
	if err := r.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Order("full_name ASC").
		Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *FinanceGormRepository) CountClients(ctx context.Context, organizationID uint) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Where("organization_id = ?", organizationID).Count(&n).Error
	return n, err
}

var _ finance.Repository = (*FinanceGormRepository)(nil)
