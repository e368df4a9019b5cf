package handler

import (
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

type maintenanceRequest struct {
	Name        string    `json:"name"         validate:"required"`
	Date        time.Time `json:"date"         validate:"required"`
	EquipmentID string    `json:"equipment_id" validate:"required"`
	Status      string    `json:"status"       validate:"required,oneof=PENDING IN_PROGRESS COMPLETED"`
	Notes       string    `json:"notes"`
}

func (r maintenanceRequest) toInput() ports.MaintenanceInput {
	return ports.MaintenanceInput{
		Name:        r.Name,
		Date:        r.Date,
		EquipmentID: r.EquipmentID,
		Status:      domain.MaintenanceStatus(r.Status),
		Notes:       r.Notes,
	}
}
