package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ExpenseStatusPending = "pending"
	ExpenseStatusPaid    = "paid"
)

type Expense struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	OrganizationID uint `gorm:"index;not null" json:"organization_id"`

	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:255" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	DueDate     time.Time       `gorm:"type:date;index;not null" json:"due_date"`
	Status      string          `gorm:"size:20;not null;default:'pending'" json:"status"`
	Category    string          `gorm:"size:30;not null;default:'outros'" json:"category"`
	PaidAt      *time.Time      `json:"paid_at"`

	CreatedByProfileID *uint `json:"created_by_profile_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
