package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// GroupService implements equipment-group use cases. Group listings are
// scoped to the requesting owner.
type GroupService struct {
	groups    ports.GroupRepository
	equipment ports.EquipmentRepository
	recorder  ports.ActivityRecorder
	log       zerolog.Logger
}

func NewGroupService(groups ports.GroupRepository, equipment ports.EquipmentRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *GroupService {
	return &GroupService{groups: groups, equipment: equipment, recorder: recorder, log: log}
}

func (s *GroupService) List(ctx context.Context, actor domain.Principal) ([]*domain.EquipmentGroup, error) {
	return s.groups.ListByOwner(ctx, actor.ID)
}

func (s *GroupService) Create(ctx context.Context, actor domain.Principal, name string) (*domain.EquipmentGroup, error) {
	created, err := s.groups.Create(ctx, &domain.EquipmentGroup{
		Name:      name,
		UserID:    actor.ID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityCreated, domain.EntityGroup, created.ID))
	return created, nil
}

// Delete refuses to remove a group while equipment still references it,
// enforced here rather than by a database cascade.
func (s *GroupService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	group, err := s.groups.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanMutate(group.UserID) {
		return domain.ErrForbidden
	}

	n, err := s.equipment.CountByGroup(ctx, id)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrGroupNotEmpty
	}

	if err := s.groups.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityDeleted, domain.EntityGroup, id))
	s.log.Info().Str("group_id", id).Str("actor", actor.ID).Msg("group deleted")
	return nil
}
