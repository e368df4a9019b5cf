package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

func TestGroupService_Delete_RefusesNonEmptyGroup(t *testing.T) {
	groups := newStubGroupRepo()
	groups.seed(domain.EquipmentGroup{ID: "grp_1", Name: "Pumps", UserID: "user_1"})
	equipment := newStubEquipmentRepo()
	equipment.groupCount["grp_1"] = 3

	svc := NewGroupService(groups, equipment, &stubRecorder{}, zerolog.Nop())
	owner := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	err := svc.Delete(context.Background(), owner, "grp_1")
	if !errors.Is(err, domain.ErrGroupNotEmpty) {
		t.Fatalf("expected ErrGroupNotEmpty, got: %v", err)
	}
	if _, err := groups.FindByID(context.Background(), "grp_1"); err != nil {
		t.Error("group must survive a refused delete")
	}
}

func TestGroupService_Delete_EmptyGroup(t *testing.T) {
	groups := newStubGroupRepo()
	groups.seed(domain.EquipmentGroup{ID: "grp_1", Name: "Pumps", UserID: "user_1"})
	equipment := newStubEquipmentRepo()
	rec := &stubRecorder{}

	svc := NewGroupService(groups, equipment, rec, zerolog.Nop())
	owner := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	if err := svc.Delete(context.Background(), owner, "grp_1"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, err := groups.FindByID(context.Background(), "grp_1"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Error("group should be gone")
	}
	if len(rec.entries) != 1 || rec.entries[0].Verb != domain.ActivityDeleted {
		t.Errorf("expected one deleted activity entry, got: %+v", rec.entries)
	}
}

func TestGroupService_Delete_SecondDeleteIsNotFound(t *testing.T) {
	groups := newStubGroupRepo()
	groups.seed(domain.EquipmentGroup{ID: "grp_1", Name: "Pumps", UserID: "user_1"})
	svc := NewGroupService(groups, newStubEquipmentRepo(), &stubRecorder{}, zerolog.Nop())
	owner := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	if err := svc.Delete(context.Background(), owner, "grp_1"); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(context.Background(), owner, "grp_1"); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("second delete must be not-found, got: %v", err)
	}
}

func TestGroupService_Delete_OwnershipPolicy(t *testing.T) {
	groups := newStubGroupRepo()
	groups.seed(domain.EquipmentGroup{ID: "grp_1", Name: "Pumps", UserID: "user_1"})
	svc := NewGroupService(groups, newStubEquipmentRepo(), &stubRecorder{}, zerolog.Nop())

	stranger := domain.Principal{ID: "user_2", Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), stranger, "grp_1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-owner USER must be forbidden, got: %v", err)
	}

	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}
	if err := svc.Delete(context.Background(), admin, "grp_1"); err != nil {
		t.Errorf("admin may delete any group, got: %v", err)
	}
}

func TestGroupService_List_ScopedToOwner(t *testing.T) {
	groups := newStubGroupRepo()
	groups.seed(domain.EquipmentGroup{ID: "grp_1", Name: "Pumps", UserID: "user_1", CreatedAt: time.Now()})
	groups.seed(domain.EquipmentGroup{ID: "grp_2", Name: "Motors", UserID: "user_2", CreatedAt: time.Now()})
	svc := NewGroupService(groups, newStubEquipmentRepo(), &stubRecorder{}, zerolog.Nop())

	out, err := svc.List(context.Background(), domain.Principal{ID: "user_1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out) != 1 || out[0].ID != "grp_1" {
		t.Errorf("expected only user_1's group, got: %+v", out)
	}
}

func TestGroupService_Create_StampsOwner(t *testing.T) {
	groups := newStubGroupRepo()
	svc := NewGroupService(groups, newStubEquipmentRepo(), &stubRecorder{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), domain.Principal{ID: "user_9", Role: domain.RoleUser}, "Compressors")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != "user_9" {
		t.Errorf("expected owner user_9, got %q", created.UserID)
	}
}
