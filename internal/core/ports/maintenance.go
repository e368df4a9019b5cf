package ports

import (
	"context"
	"io"
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// MaintenanceRepository defines persistence operations for maintenance records.
type MaintenanceRepository interface {
	Create(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error)
	FindByID(ctx context.Context, id string) (*domain.Maintenance, error)
	// List returns all records ordered by date descending.
	List(ctx context.Context) ([]*domain.Maintenance, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.Maintenance, error)
	Latest(ctx context.Context, limit int) ([]*domain.Maintenance, error)
	Update(ctx context.Context, m *domain.Maintenance) (*domain.Maintenance, error)
	Delete(ctx context.Context, id string) error
}

// AttachmentRepository defines persistence operations for attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, a *domain.Attachment) (*domain.Attachment, error)
	FindByID(ctx context.Context, id string) (*domain.Attachment, error)
	ListByMaintenance(ctx context.Context, maintenanceID string) ([]*domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}

// BlobStore abstracts the object store holding attachment payloads.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, size int64, r io.Reader) error
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string, expires time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}

// MaintenanceInput carries the writable maintenance fields.
type MaintenanceInput struct {
	Name        string
	Date        time.Time
	EquipmentID string
	Status      domain.MaintenanceStatus
	Notes       string
}

// AttachmentView is attachment metadata plus a download URL.
type AttachmentView struct {
	Attachment domain.Attachment `json:"attachment"`
	URL        string            `json:"url,omitempty"`
}

// MaintenanceListItem is a maintenance row with its equipment resolved.
type MaintenanceListItem struct {
	Maintenance domain.Maintenance     `json:"maintenance"`
	Equipment   *domain.Equipment      `json:"equipment,omitempty"`
	Group       *domain.EquipmentGroup `json:"group,omitempty"`
}

// MaintenanceDetail is the full single-record view with attachments.
type MaintenanceDetail struct {
	Maintenance domain.Maintenance     `json:"maintenance"`
	Equipment   *domain.Equipment      `json:"equipment,omitempty"`
	Group       *domain.EquipmentGroup `json:"group,omitempty"`
	Attachments []AttachmentView       `json:"attachments"`
}

// MaintenanceService defines use-case operations for maintenance records.
type MaintenanceService interface {
	Create(ctx context.Context, actor domain.Principal, in MaintenanceInput) (*domain.Maintenance, error)
	Get(ctx context.Context, id string) (*MaintenanceDetail, error)
	List(ctx context.Context) ([]MaintenanceListItem, error)
	ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.Maintenance, error)
	Update(ctx context.Context, actor domain.Principal, id string, in MaintenanceInput) (*domain.Maintenance, error)
	// Delete removes the record along with its attachments.
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// UploadInput carries one incoming attachment payload.
type UploadInput struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// AttachmentService handles attachment upload and removal.
type AttachmentService interface {
	Upload(ctx context.Context, actor domain.Principal, maintenanceID string, in UploadInput) (*domain.Attachment, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
