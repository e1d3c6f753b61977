package models

import "time"

// StockMovement is an insert-only ledger row. Quantity is signed.
type StockMovement struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	OrganizationID uint `gorm:"index;not null" json:"organization_id"`

	ProductID uint     `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"product,omitempty"`

	Quantity     int    `gorm:"not null" json:"quantity"`
	MovementType string `gorm:"size:20;not null" json:"movement_type"`
	Reason       string `gorm:"size:50" json:"reason"`
	Notes        string `gorm:"type:text" json:"notes"`

	CreatedByProfileID *uint    `json:"created_by_profile_id"`
	CreatedBy          *Profile `gorm:"foreignKey:CreatedByProfileID;constraint:OnDelete:SET NULL;" json:"created_by,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
