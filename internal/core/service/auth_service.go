package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/maintrack/maintenance-system/internal/auth"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// AuthService implements registration, login, and credential management.
type AuthService struct {
	users    ports.UserRepository
	codec    *auth.Codec
	recorder ports.ActivityRecorder
	log      zerolog.Logger
}

func NewAuthService(users ports.UserRepository, codec *auth.Codec, recorder ports.ActivityRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, codec: codec, recorder: recorder, log: log}
}

// Register creates a USER-role account and returns a token alongside it.
// Self-registration never grants ADMIN.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *domain.User, error) {
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return "", nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.codec.Issue(principalOf(created))
	if err != nil {
		return "", nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return token, created, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(principalOf(user))
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// CreateUser lets an administrator create an account with an arbitrary role.
// The role gate has already run; the role value itself is validated here.
func (s *AuthService) CreateUser(ctx context.Context, actor domain.Principal, name, email, password, role string) (*domain.User, error) {
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidStatus
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityCreated, domain.EntityUser, created.ID))
	s.log.Info().Str("user_id", created.ID).Str("role", role).Msg("user created by admin")
	return created, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, actor domain.Principal, currentPassword, newPassword string) error {
	user, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return domain.ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.recorder.Record(newActivity(actor, domain.ActivityUpdated, domain.EntityUser, user.ID))
	return nil
}

func principalOf(u *domain.User) domain.Principal {
	return domain.Principal{ID: u.ID, Email: u.Email, Role: u.Role}
}
