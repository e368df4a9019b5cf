package domain

import "time"

// EquipmentStatus is the operational state of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentActive       EquipmentStatus = "ACTIVE"
	EquipmentMaintenance  EquipmentStatus = "MAINTENANCE"
	EquipmentOutOfService EquipmentStatus = "OUT_OF_SERVICE"
)

// ValidEquipmentStatus reports whether s is a known equipment status.
func ValidEquipmentStatus(s EquipmentStatus) bool {
	switch s {
	case EquipmentActive, EquipmentMaintenance, EquipmentOutOfService:
		return true
	}
	return false
}

// Equipment is a tracked asset. GroupID is optional; UserID records the
// creating owner.
type Equipment struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Location   string          `json:"location"`
	Status     EquipmentStatus `json:"status"`
	AcquiredAt *time.Time      `json:"acquired_at,omitempty"`
	GroupID    string          `json:"group_id,omitempty"`
	UserID     string          `json:"user_id"`
	CreatedAt  time.Time       `json:"created_at"`
}

// EquipmentGroup is a user-owned grouping of equipment.
type EquipmentGroup struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
