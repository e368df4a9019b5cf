package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

func TestUserService_Update_AppliesFields(t *testing.T) {
	users := newStubUserRepo()
	users.seed(domain.User{ID: "user_1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	rec := &stubRecorder{}
	svc := NewUserService(users, rec, zerolog.Nop())
	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}

	updated, err := svc.Update(context.Background(), admin, "user_1", ports.UpdateUserInput{
		Name: "Alicia",
		Role: domain.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Alicia" || updated.Role != domain.RoleAdmin {
		t.Errorf("fields not applied: %+v", updated)
	}
	if updated.Email != "alice@example.com" {
		t.Errorf("untouched field changed: %q", updated.Email)
	}
	if len(rec.entries) != 1 || rec.entries[0].Verb != domain.ActivityUpdated {
		t.Errorf("expected one updated activity entry, got: %+v", rec.entries)
	}
}

func TestUserService_Update_EmptyInputIsNoOp(t *testing.T) {
	users := newStubUserRepo()
	users.seed(domain.User{ID: "user_1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	rec := &stubRecorder{}
	svc := NewUserService(users, rec, zerolog.Nop())
	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}

	got, err := svc.Update(context.Background(), admin, "user_1", ports.UpdateUserInput{})
	if err != nil {
		t.Fatalf("an empty update must succeed, got: %v", err)
	}
	if got.Name != "Alice" || got.Email != "alice@example.com" || got.Role != domain.RoleUser {
		t.Errorf("record changed by an empty update: %+v", got)
	}
	if users.updateCalls != 0 {
		t.Errorf("empty update must not reach the store, got %d calls", users.updateCalls)
	}
	if len(rec.entries) != 0 {
		t.Errorf("no activity for a no-op, got: %+v", rec.entries)
	}
}

func TestUserService_Update_EmptyInputUnknownUser(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &stubRecorder{}, zerolog.Nop())
	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}

	_, err := svc.Update(context.Background(), admin, "user_missing", ports.UpdateUserInput{})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestUserService_Update_InvalidRole(t *testing.T) {
	users := newStubUserRepo()
	users.seed(domain.User{ID: "user_1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := NewUserService(users, &stubRecorder{}, zerolog.Nop())
	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}

	_, err := svc.Update(context.Background(), admin, "user_1", ports.UpdateUserInput{Role: "SUPERUSER"})
	if !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got: %v", err)
	}
}

func TestUserService_Delete_SecondDeleteIsNotFound(t *testing.T) {
	users := newStubUserRepo()
	users.seed(domain.User{ID: "user_1", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser})
	svc := NewUserService(users, &stubRecorder{}, zerolog.Nop())
	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}

	if err := svc.Delete(context.Background(), admin, "user_1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, "user_1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("second delete must be not-found, got: %v", err)
	}
}
