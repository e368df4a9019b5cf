package handler

import (
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

type equipmentRequest struct {
	Name       string     `json:"name"        validate:"required"`
	Type       string     `json:"type"        validate:"required"`
	Location   string     `json:"location"    validate:"required"`
	Status     string     `json:"status"      validate:"required,oneof=ACTIVE MAINTENANCE OUT_OF_SERVICE"`
	AcquiredAt *time.Time `json:"acquired_at"`
	GroupID    string     `json:"group_id"`
}

func (r equipmentRequest) toInput() ports.EquipmentInput {
	return ports.EquipmentInput{
		Name:       r.Name,
		Type:       r.Type,
		Location:   r.Location,
		Status:     domain.EquipmentStatus(r.Status),
		AcquiredAt: r.AcquiredAt,
		GroupID:    r.GroupID,
	}
}

type createGroupRequest struct {
	Name string `json:"name" validate:"required"`
}
