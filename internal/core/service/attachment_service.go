package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// AttachmentService handles attachment upload and removal. The blob is
// written before the metadata so a failed upload never leaves a metadata row
// pointing at nothing.
type AttachmentService struct {
	attachments ports.AttachmentRepository
	maintenance ports.MaintenanceRepository
	blobs       ports.BlobStore
	recorder    ports.ActivityRecorder
	log         zerolog.Logger
}

func NewAttachmentService(
	attachments ports.AttachmentRepository,
	maintenance ports.MaintenanceRepository,
	blobs ports.BlobStore,
	recorder ports.ActivityRecorder,
	log zerolog.Logger,
) *AttachmentService {
	return &AttachmentService{
		attachments: attachments,
		maintenance: maintenance,
		blobs:       blobs,
		recorder:    recorder,
		log:         log,
	}
}

func (s *AttachmentService) Upload(ctx context.Context, actor domain.Principal, maintenanceID string, in ports.UploadInput) (*domain.Attachment, error) {
	parent, err := s.maintenance.FindByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	if !actor.CanMutate(parent.UserID) {
		return nil, domain.ErrForbidden
	}

	key := storageKey()
	if err := s.blobs.Put(ctx, key, in.ContentType, in.Size, in.Reader); err != nil {
		return nil, fmt.Errorf("store attachment: %w", err)
	}

	created, err := s.attachments.Create(ctx, &domain.Attachment{
		MaintenanceID: maintenanceID,
		Filename:      in.Filename,
		ContentType:   in.ContentType,
		Size:          in.Size,
		StorageKey:    key,
		UploadedAt:    time.Now().UTC(),
	})
	if err != nil {
		if delErr := s.blobs.Delete(ctx, key); delErr != nil {
			s.log.Warn().Err(delErr).Str("storage_key", key).Msg("failed to clean up orphaned blob")
		}
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityCreated, domain.EntityAttachment, created.ID))
	s.log.Info().Str("attachment_id", created.ID).Str("maintenance_id", maintenanceID).Int64("size", in.Size).Msg("attachment uploaded")
	return created, nil
}

func (s *AttachmentService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	file, err := s.attachments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	parent, err := s.maintenance.FindByID(ctx, file.MaintenanceID)
	if err != nil {
		return err
	}
	if !actor.CanMutate(parent.UserID) {
		return domain.ErrForbidden
	}

	if err := s.attachments.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.blobs.Delete(ctx, file.StorageKey); err != nil {
		s.log.Warn().Err(err).Str("storage_key", file.StorageKey).Msg("failed to delete attachment blob")
	}

	s.recorder.Record(newActivity(actor, domain.ActivityDeleted, domain.EntityAttachment, id))
	return nil
}

// storageKey returns a date-partitioned random object key.
func storageKey() string {
	now := time.Now().UTC()
	return fmt.Sprintf("attachments/%d/%02d/%02d/%s", now.Year(), now.Month(), now.Day(), uuid.New())
}
