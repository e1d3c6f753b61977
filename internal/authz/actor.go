// Package authz carries the authenticated caller through use cases.
package authz

import "github.com/BruksfildServices01/barber-backoffice/internal/models"

// Actor is the organization, profile and role behind a request.
type Actor struct {
	OrganizationID uint
	ProfileID      uint
	Role           string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanActOn reports whether the actor may touch rows owned by profileID.
// Admins act on anyone in their organization; barbers only on themselves.
func (a Actor) CanActOn(profileID uint) bool {
	return a.IsAdmin() || a.ProfileID == profileID
}

// ProfileRef returns the profile id as a pointer for nullable audit/author columns.
func (a Actor) ProfileRef() *uint {
	if a.ProfileID == 0 {
		return nil
	}
	id := a.ProfileID
	return &id
}
