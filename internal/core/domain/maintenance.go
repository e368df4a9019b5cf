package domain

import "time"

// MaintenanceStatus is the lifecycle state of a maintenance record.
type MaintenanceStatus string

const (
	MaintenancePending    MaintenanceStatus = "PENDING"
	MaintenanceInProgress MaintenanceStatus = "IN_PROGRESS"
	MaintenanceCompleted  MaintenanceStatus = "COMPLETED"
)

// ValidMaintenanceStatus reports whether s is a known maintenance status.
func ValidMaintenanceStatus(s MaintenanceStatus) bool {
	switch s {
	case MaintenancePending, MaintenanceInProgress, MaintenanceCompleted:
		return true
	}
	return false
}

// Maintenance is a single maintenance intervention on a piece of equipment.
type Maintenance struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Date        time.Time         `json:"date"`
	EquipmentID string            `json:"equipment_id"`
	Status      MaintenanceStatus `json:"status"`
	Notes       string            `json:"notes,omitempty"`
	UserID      string            `json:"user_id"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Attachment is file metadata for a document attached to a maintenance
// record. The payload itself lives in blob storage under StorageKey.
type Attachment struct {
	ID            string    `json:"id"`
	MaintenanceID string    `json:"maintenance_id"`
	Filename      string    `json:"filename"`
	ContentType   string    `json:"content_type"`
	Size          int64     `json:"size"`
	StorageKey    string    `json:"-"`
	UploadedAt    time.Time `json:"uploaded_at"`
}
