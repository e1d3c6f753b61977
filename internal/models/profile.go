package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	RoleAdmin  = "admin"
	RoleBarber = "barber"
)

// DayHours is one working interval in "HH:MM" wall-clock time.
type DayHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// WorkingHours maps lowercase English weekday names to an interval; nil means day off.
type WorkingHours map[string]*DayHours

// Profile is a staff member and their login identity.
type Profile struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	OrganizationID uint          `gorm:"index;not null" json:"organization_id"`
	Organization   *Organization `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"organization,omitempty"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	AvatarURL    string `gorm:"size:500" json:"avatar_url"`
	Role         string `gorm:"size:20;not null;default:'barber'" json:"role"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`

	CommissionRate decimal.NullDecimal               `gorm:"type:decimal(5,2)" json:"commission_rate"`
	WorkingHours   datatypes.JSONType[WorkingHours] `json:"working_hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Commission returns the configured rate, treating unset as zero.
func (p *Profile) Commission() decimal.Decimal {
	if !p.CommissionRate.Valid {
		return decimal.Zero
	}
	return p.CommissionRate.Decimal
}
