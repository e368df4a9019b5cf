package ports

import (
	"context"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// UpdateUserInput carries the mutable user fields for administration.
type UpdateUserInput struct {
	Name  string
	Email string
	Role  string
}

// AuthService implements registration, login, and credential management.
type AuthService interface {
	// Register creates a USER-role account and returns a fresh token with it.
	Register(ctx context.Context, name, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CreateUser lets an administrator create an account with any role.
	CreateUser(ctx context.Context, actor domain.Principal, name, email, password, role string) (*domain.User, error)
	ChangePassword(ctx context.Context, actor domain.Principal, currentPassword, newPassword string) error
}

// UserService implements user administration.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, actor domain.Principal, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor domain.Principal, id string) error
}
