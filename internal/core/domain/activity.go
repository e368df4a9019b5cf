package domain

import "time"

// Activity verbs.
const (
	ActivityCreated = "created"
	ActivityUpdated = "updated"
	ActivityDeleted = "deleted"
)

// Activity entity kinds.
const (
	EntityUser        = "user"
	EntityEquipment   = "equipment"
	EntityGroup       = "group"
	EntityMaintenance = "maintenance"
	EntityAttachment  = "attachment"
)

// Activity is one audit entry describing a mutation performed by a principal.
// Entries are written asynchronously and are informational only.
type Activity struct {
	ID         string    `json:"id,omitempty"`
	ActorID    string    `json:"actor_id"`
	ActorEmail string    `json:"actor_email"`
	Verb       string    `json:"verb"`
	Entity     string    `json:"entity"`
	EntityID   string    `json:"entity_id"`
	At         time.Time `json:"at"`
}
