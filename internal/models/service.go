package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Service struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	OrganizationID uint `gorm:"index;not null" json:"organization_id"`

	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"size:255" json:"description"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	CommissionRate  decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"commission_rate"`
	Category        string          `gorm:"size:50" json:"category"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
