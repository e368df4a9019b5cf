package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// UserService implements user administration. All operations sit behind the
// ADMIN role gate at the HTTP layer.
type UserService struct {
	users    ports.UserRepository
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, recorder ports.ActivityRecorder, log zerolog.Logger) *UserService {
	return &UserService{users: users, recorder: recorder, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Update(ctx context.Context, actor domain.Principal, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if in.Role != "" && !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidStatus
	}

	// Nothing to change: return the current record rather than sending an
	// empty update to the store.
	if in == (ports.UpdateUserInput{}) {
		return s.users.FindByID(ctx, id)
	}

	updated, err := s.users.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityUpdated, domain.EntityUser, id))
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Principal, id string) error {
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityDeleted, domain.EntityUser, id))
	s.log.Info().Str("user_id", id).Str("actor", actor.ID).Msg("user deleted")
	return nil
}
