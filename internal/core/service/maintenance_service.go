package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

const downloadURLExpiry = 15 * time.Minute

// MaintenanceService implements maintenance-record use cases.
type MaintenanceService struct {
	maintenance ports.MaintenanceRepository
	equipment   ports.EquipmentRepository
	groups      ports.GroupRepository
	attachments ports.AttachmentRepository
	blobs       ports.BlobStore
	recorder    ports.ActivityRecorder
	log         zerolog.Logger
}

func NewMaintenanceService(
	maintenance ports.MaintenanceRepository,
	equipment ports.EquipmentRepository,
	groups ports.GroupRepository,
	attachments ports.AttachmentRepository,
	blobs ports.BlobStore,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *MaintenanceService {
	return &MaintenanceService{
		maintenance: maintenance,
		equipment:   equipment,
		groups:      groups,
		attachments: attachments,
		blobs:       blobs,
		recorder:    recorder,
		log:         log,
	}
}

// Create stamps the actor as creator. The referenced equipment must exist.
func (s *MaintenanceService) Create(ctx context.Context, actor domain.Principal, in ports.MaintenanceInput) (*domain.Maintenance, error) {
	if !domain.ValidMaintenanceStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}
	if _, err := s.equipment.FindByID(ctx, in.EquipmentID); err != nil {
		return nil, err
	}

	created, err := s.maintenance.Create(ctx, &domain.Maintenance{
		Name:        in.Name,
		Date:        in.Date,
		EquipmentID: in.EquipmentID,
		Status:      in.Status,
		Notes:       in.Notes,
		UserID:      actor.ID,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityCreated, domain.EntityMaintenance, created.ID))
	s.log.Info().Str("maintenance_id", created.ID).Str("equipment_id", in.EquipmentID).Msg("maintenance created")
	return created, nil
}

// Get returns the record with equipment, group, and attachment download URLs.
func (s *MaintenanceService) Get(ctx context.Context, id string) (*ports.MaintenanceDetail, error) {
	m, err := s.maintenance.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &ports.MaintenanceDetail{Maintenance: *m}

	if e, err := s.equipment.FindByID(ctx, m.EquipmentID); err == nil {
		detail.Equipment = e
		if e.GroupID != "" {
			if g, err := s.groups.FindByID(ctx, e.GroupID); err == nil {
				detail.Group = g
			}
		}
	}

	files, err := s.attachments.ListByMaintenance(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Attachments = make([]ports.AttachmentView, len(files))
	for i, f := range files {
		view := ports.AttachmentView{Attachment: *f}
		url, err := s.blobs.PresignGet(ctx, f.StorageKey, downloadURLExpiry)
		if err != nil {
			s.log.Warn().Err(err).Str("attachment_id", f.ID).Msg("failed to presign download url")
		} else {
			view.URL = url
		}
		detail.Attachments[i] = view
	}

	return detail, nil
}

// List returns all records, newest first, with equipment and groups resolved.
func (s *MaintenanceService) List(ctx context.Context) ([]ports.MaintenanceListItem, error) {
	all, err := s.maintenance.List(ctx)
	if err != nil {
		return nil, err
	}

	equipmentIDs := make([]string, 0, len(all))
	seen := make(map[string]struct{})
	for _, m := range all {
		if _, ok := seen[m.EquipmentID]; ok {
			continue
		}
		seen[m.EquipmentID] = struct{}{}
		equipmentIDs = append(equipmentIDs, m.EquipmentID)
	}

	equipmentByID := make(map[string]*domain.Equipment)
	groupIDs := make([]string, 0)
	if len(equipmentIDs) > 0 {
		equipment, err := s.equipment.FindByIDs(ctx, equipmentIDs)
		if err != nil {
			return nil, err
		}
		groupSeen := make(map[string]struct{})
		for _, e := range equipment {
			equipmentByID[e.ID] = e
			if e.GroupID == "" {
				continue
			}
			if _, ok := groupSeen[e.GroupID]; ok {
				continue
			}
			groupSeen[e.GroupID] = struct{}{}
			groupIDs = append(groupIDs, e.GroupID)
		}
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

	items := make([]ports.MaintenanceListItem, len(all))
	for i, m := range all {
		item := ports.MaintenanceListItem{Maintenance: *m}
		if e := equipmentByID[m.EquipmentID]; e != nil {
			item.Equipment = e
			item.Group = groupByID[e.GroupID]
		}
		items[i] = item
	}
	return items, nil
}

func (s *MaintenanceService) ListByEquipment(ctx context.Context, equipmentID string) ([]*domain.Maintenance, error) {
	return s.maintenance.ListByEquipment(ctx, equipmentID)
}

func (s *MaintenanceService) Update(ctx context.Context, actor domain.Principal, id string, in ports.MaintenanceInput) (*domain.Maintenance, error) {
	if !domain.ValidMaintenanceStatus(in.Status) {
		return nil, domain.ErrInvalidStatus
	}

	existing, err := s.maintenance.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(existing.UserID) {
		return nil, domain.ErrForbidden
	}
	if in.EquipmentID != existing.EquipmentID {
		if _, err := s.equipment.FindByID(ctx, in.EquipmentID); err != nil {
			return nil, err
		}
	}

	existing.Name = in.Name
	existing.Date = in.Date
	existing.EquipmentID = in.EquipmentID
	existing.Status = in.Status
	existing.Notes = in.Notes

	updated, err := s.maintenance.Update(ctx, existing)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityUpdated, domain.EntityMaintenance, id))
	return updated, nil
}

// Delete removes the record and its attachments. Blob deletions are best
// effort; orphaned objects are preferable to a failed delete.
func (s *MaintenanceService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	existing, err := s.maintenance.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanMutate(existing.UserID) {
		return domain.ErrForbidden
	}

	files, err := s.attachments.ListByMaintenance(ctx, id)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := s.attachments.Delete(ctx, f.ID); err != nil {
			return err
		}
		if err := s.blobs.Delete(ctx, f.StorageKey); err != nil {
			s.log.Warn().Err(err).Str("storage_key", f.StorageKey).Msg("failed to delete attachment blob")
		}
	}

	if err := s.maintenance.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityDeleted, domain.EntityMaintenance, id))
	s.log.Info().Str("maintenance_id", id).Str("actor", actor.ID).Msg("maintenance deleted")
	return nil
}
