package ports

import (
	"context"
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// EquipmentRepository defines persistence operations for equipment.
type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	FindByID(ctx context.Context, id string) (*domain.Equipment, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Equipment, error)
	// List returns all equipment ordered by created_at descending.
	List(ctx context.Context) ([]*domain.Equipment, error)
	Latest(ctx context.Context, limit int) ([]*domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) (*domain.Equipment, error)
	Delete(ctx context.Context, id string) error
	CountByGroup(ctx context.Context, groupID string) (int64, error)
}

// GroupRepository defines persistence operations for equipment groups.
type GroupRepository interface {
	Create(ctx context.Context, g *domain.EquipmentGroup) (*domain.EquipmentGroup, error)
	FindByID(ctx context.Context, id string) (*domain.EquipmentGroup, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.EquipmentGroup, error)
	// ListByOwner returns the owner's groups ordered by name ascending.
	ListByOwner(ctx context.Context, userID string) ([]*domain.EquipmentGroup, error)
	Delete(ctx context.Context, id string) error
}

// EquipmentInput carries the writable equipment fields.
type EquipmentInput struct {
	Name       string
	Type       string
	Location   string
	Status     domain.EquipmentStatus
	AcquiredAt *time.Time
	GroupID    string
}

// EquipmentListItem is an equipment row with its group resolved.
type EquipmentListItem struct {
	Equipment domain.Equipment       `json:"equipment"`
	Group     *domain.EquipmentGroup `json:"group,omitempty"`
}

// EquipmentDetail is the full single-equipment view.
type EquipmentDetail struct {
	Equipment    domain.Equipment       `json:"equipment"`
	Group        *domain.EquipmentGroup `json:"group,omitempty"`
	Maintenances []*domain.Maintenance  `json:"maintenances"`
}

// EquipmentService defines use-case operations for equipment.
type EquipmentService interface {
	Create(ctx context.Context, actor domain.Principal, in EquipmentInput) (*domain.Equipment, error)
	Get(ctx context.Context, id string) (*EquipmentDetail, error)
	List(ctx context.Context) ([]EquipmentListItem, error)
	Update(ctx context.Context, actor domain.Principal, id string, in EquipmentInput) (*domain.Equipment, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}

// GroupService defines use-case operations for equipment groups.
type GroupService interface {
	List(ctx context.Context, actor domain.Principal) ([]*domain.EquipmentGroup, error)
	Create(ctx context.Context, actor domain.Principal, name string) (*domain.EquipmentGroup, error)
	// Delete refuses to remove a group that still has equipment assigned.
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
