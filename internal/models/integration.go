package models

import "time"

// Integration holds the single outbound webhook configuration of an organization.
type Integration struct {
	ID             uint `gorm:"primaryKey" json:"id"`
	OrganizationID uint `gorm:"uniqueIndex;not null" json:"organization_id"`

	Name       string `gorm:"size:100;not null;default:'webhook'" json:"name"`
	WebhookURL string `gorm:"size:500" json:"webhook_url"`
	APIKey     string `gorm:"size:255" json:"api_key"`
	IsActive   bool   `gorm:"not null;default:false" json:"is_active"`

	CreatedByProfileID *uint `json:"created_by_profile_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
