package service

import (
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// newActivity builds an audit entry for a mutation performed by actor.
func newActivity(actor domain.Principal, verb, entity, entityID string) domain.Activity {
	return domain.Activity{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Verb:       verb,
		Entity:     entity,
		EntityID:   entityID,
		At:         time.Now().UTC(),
	}
}
