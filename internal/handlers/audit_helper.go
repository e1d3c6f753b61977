package handlers

import (
	"github.com/BruksfildServices01/barber-backoffice/internal/audit"
	"github.com/BruksfildServices01/barber-backoffice/internal/authz"
)

func writeAudit(d *audit.Dispatcher, actor authz.Actor, action, entity string, entityID uint, meta any) {
	id := entityID
	d.Dispatch(audit.Event{
		OrganizationID: actor.OrganizationID,
		ProfileID:      actor.ProfileRef(),
		Action:         action,
		Entity:         entity,
		EntityID:       &id,
		Metadata:       meta,
	})
}
