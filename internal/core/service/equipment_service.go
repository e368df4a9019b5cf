package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// EquipmentService implements equipment use cases.
type EquipmentService struct {
	equipment   ports.EquipmentRepository
	groups      ports.GroupRepository
	maintenance ports.MaintenanceRepository
	recorder    ports.ActivityRecorder
	log         zerolog.Logger
}

func NewEquipmentService(
	equipment ports.EquipmentRepository,
	groups ports.GroupRepository,
	maintenance ports.MaintenanceRepository,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *EquipmentService {
	return &EquipmentService{
		equipment:   equipment,
		groups:      groups,
		maintenance: maintenance,
		recorder:    recorder,
		log:         log,
	}
}

// Create stamps the actor as owner. A referenced group must exist.
func (s *EquipmentService) Create(ctx context.Context, actor domain.Principal, in ports.EquipmentInput) (*domain.Equipment, error) {
	if !domain.ValidEquipmentStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if in.GroupID != "" {
		if _, err := s.groups.FindByID(ctx, in.GroupID); err != nil {
			return nil, err
		}
	}

	created, err := s.equipment.Create(ctx, &domain.Equipment{
		Name:       in.Name,
		Type:       in.Type,
		Location:   in.Location,
		Status:     in.Status,
		AcquiredAt: in.AcquiredAt,
		GroupID:    in.GroupID,
		UserID:     actor.ID,
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityCreated, domain.EntityEquipment, created.ID))
	s.log.Info().Str("equipment_id", created.ID).Str("owner", actor.ID).Msg("equipment created")
	return created, nil
}

// Get returns the equipment with its group and maintenance history.
func (s *EquipmentService) Get(ctx context.Context, id string) (*ports.EquipmentDetail, error) {
	e, err := s.equipment.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.EquipmentDetail{Equipment: *e}

	if e.GroupID != "" {
		if g, err := s.groups.FindByID(ctx, e.GroupID); err == nil {
			detail.Group = g
		}
	}

	history, err := s.maintenance.ListByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Maintenances = history

	return detail, nil
}

// List returns all equipment, newest first, with groups resolved in one pass.
func (s *EquipmentService) List(ctx context.Context) ([]ports.EquipmentListItem, error) {
	all, err := s.equipment.List(ctx)
	if err != nil {
		return nil, err
	}

	groupIDs := make([]string, 0, len(all))
	seen := make(map[string]struct{})
	for _, e := range all {
		if e.GroupID == "" {
			continue
		}
		if _, ok := seen[e.GroupID]; ok {
			continue
		}
		seen[e.GroupID] = struct{}{}
		groupIDs = append(groupIDs, e.GroupID)
	}

	groupByID := make(map[string]*domain.EquipmentGroup)
	if len(groupIDs) > 0 {
		groups, err := s.groups.FindByIDs(ctx, groupIDs)
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			groupByID[g.ID] = g
		}
	}

	items := make([]ports.EquipmentListItem, len(all))
	for i, e := range all {
		items[i] = ports.EquipmentListItem{Equipment: *e, Group: groupByID[e.GroupID]}
	}
	return items, nil
}

// Update applies the uniform ownership policy: owner or ADMIN.
func (s *EquipmentService) Update(ctx context.Context, actor domain.Principal, id string, in ports.EquipmentInput) (*domain.Equipment, error) {
	if !domain.ValidEquipmentStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}

	existing, err := s.equipment.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(existing.UserID) {
		return nil, domain.ErrForbidden
	}
	if in.GroupID != "" && in.GroupID != existing.GroupID {
		if _, err := s.groups.FindByID(ctx, in.GroupID); err != nil {
			return nil, err
		}
	}

	existing.Name = in.Name
	existing.Type = in.Type
	existing.Location = in.Location
	existing.Status = in.Status
	existing.AcquiredAt = in.AcquiredAt
	existing.GroupID = in.GroupID

	updated, err := s.equipment.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityUpdated, domain.EntityEquipment, id))
	return updated, nil
}

func (s *EquipmentService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	existing, err := s.equipment.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanMutate(existing.UserID) {
		return domain.ErrForbidden
	}

	if err := s.equipment.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityDeleted, domain.EntityEquipment, id))
	s.log.Info().Str("equipment_id", id).Str("actor", actor.ID).Msg("equipment deleted")
	return nil
}
