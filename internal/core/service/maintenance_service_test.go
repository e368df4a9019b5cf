package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

func newMaintenanceSvc(mnt *stubMaintenanceRepo, eq *stubEquipmentRepo, att *stubAttachmentRepo, blobs *stubBlobStore, rec *stubRecorder) *MaintenanceService {
	return NewMaintenanceService(mnt, eq, newStubGroupRepo(), att, blobs, rec, zerolog.Nop())
}

func TestMaintenanceService_Create_RequiresEquipment(t *testing.T) {
	svc := newMaintenanceSvc(newStubMaintenanceRepo(), newStubEquipmentRepo(), newStubAttachmentRepo(), newStubBlobStore(), &stubRecorder{})
	actor := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	_, err := svc.Create(context.Background(), actor, ports.MaintenanceInput{
		Name:        "Oil change",
		Date:        time.Now(),
		EquipmentID: "eq_missing",
		Status:      domain.MaintenancePending,
	})
	if !errors.Is(err, domain.ErrEquipmentNotFound) {
		t.Errorf("expected ErrEquipmentNotFound, got: %v", err)
	}
}

func TestMaintenanceService_Create_StampsCreator(t *testing.T) {
	eq := newStubEquipmentRepo()
	eq.seed(domain.Equipment{ID: "eq_1", Name: "Lathe", Status: domain.EquipmentActive, UserID: "user_1"})
	svc := newMaintenanceSvc(newStubMaintenanceRepo(), eq, newStubAttachmentRepo(), newStubBlobStore(), &stubRecorder{})
	actor := domain.Principal{ID: "user_2", Role: domain.RoleUser}

	created, err := svc.Create(context.Background(), actor, ports.MaintenanceInput{
		Name:        "Oil change",
		Date:        time.Now(),
		EquipmentID: "eq_1",
		Status:      domain.MaintenancePending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != "user_2" {
		t.Errorf("creator not stamped, got %q", created.UserID)
	}
}

func TestMaintenanceService_Update_OwnershipPolicy(t *testing.T) {
	eq := newStubEquipmentRepo()
	eq.seed(domain.Equipment{ID: "eq_1", Name: "Lathe", Status: domain.EquipmentActive, UserID: "user_1"})
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	svc := newMaintenanceSvc(mnt, eq, newStubAttachmentRepo(), newStubBlobStore(), &stubRecorder{})

	in := ports.MaintenanceInput{Name: "Oil change", Date: time.Now(), EquipmentID: "eq_1", Status: domain.MaintenanceCompleted}

	stranger := domain.Principal{ID: "user_2", Role: domain.RoleUser}
	if _, err := svc.Update(context.Background(), stranger, "mnt_1", in); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-creator USER must be forbidden, got: %v", err)
	}

	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}
	updated, err := svc.Update(context.Background(), admin, "mnt_1", in)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Status != domain.MaintenanceCompleted {
		t.Errorf("status not applied, got %q", updated.Status)
	}
}

func TestMaintenanceService_Delete_RemovesAttachments(t *testing.T) {
	eq := newStubEquipmentRepo()
	eq.seed(domain.Equipment{ID: "eq_1", Name: "Lathe", Status: domain.EquipmentActive, UserID: "user_1"})
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	att.seed(domain.Attachment{ID: "att_1", MaintenanceID: "mnt_1", StorageKey: "attachments/k1"})
	att.seed(domain.Attachment{ID: "att_2", MaintenanceID: "mnt_1", StorageKey: "attachments/k2"})
	blobs := newStubBlobStore()
	blobs.stored["attachments/k1"] = 10
	blobs.stored["attachments/k2"] = 20

	svc := newMaintenanceSvc(mnt, eq, att, blobs, &stubRecorder{})
	owner := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	if err := svc.Delete(context.Background(), owner, "mnt_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(att.byID) != 0 {
		t.Errorf("attachment metadata must be removed, left: %d", len(att.byID))
	}
	if len(blobs.deleted) != 2 {
		t.Errorf("expected 2 blob deletions, got: %v", blobs.deleted)
	}
	if err := svc.Delete(context.Background(), owner, "mnt_1"); !errors.Is(err, domain.ErrMaintenanceNotFound) {
		t.Errorf("second delete must be not-found, got: %v", err)
	}
}

func TestMaintenanceService_Get_PresignsAttachmentURLs(t *testing.T) {
	eq := newStubEquipmentRepo()
	eq.seed(domain.Equipment{ID: "eq_1", Name: "Lathe", Status: domain.EquipmentActive, UserID: "user_1"})
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	att.seed(domain.Attachment{ID: "att_1", MaintenanceID: "mnt_1", Filename: "report.pdf", StorageKey: "attachments/k1"})

	svc := newMaintenanceSvc(mnt, eq, att, newStubBlobStore(), &stubRecorder{})
	detail, err := svc.Get(context.Background(), "mnt_1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(detail.Attachments) != 1 {
		t.Fatalf("expected 1 attachment, got %d", len(detail.Attachments))
	}
	if detail.Attachments[0].URL != "https://blobs.example.com/attachments/k1" {
		t.Errorf("unexpected download url: %q", detail.Attachments[0].URL)
	}
}

func TestMaintenanceService_Get_PresignFailureIsNonFatal(t *testing.T) {
	eq := newStubEquipmentRepo()
	eq.seed(domain.Equipment{ID: "eq_1", Name: "Lathe", Status: domain.EquipmentActive, UserID: "user_1"})
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	att.seed(domain.Attachment{ID: "att_1", MaintenanceID: "mnt_1", StorageKey: "attachments/k1"})
	blobs := newStubBlobStore()
	blobs.presignErr = errors.New("s3 unavailable")

	svc := newMaintenanceSvc(mnt, eq, att, blobs, &stubRecorder{})
	detail, err := svc.Get(context.Background(), "mnt_1")
	if err != nil {
		t.Fatalf("presign failure must not fail the read, got: %v", err)
	}
	if detail.Attachments[0].URL != "" {
		t.Errorf("expected empty url on presign failure, got %q", detail.Attachments[0].URL)
	}
}

func TestAttachmentService_Upload_HappyPath(t *testing.T) {
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	blobs := newStubBlobStore()
	rec := &stubRecorder{}

	svc := NewAttachmentService(att, mnt, blobs, rec, zerolog.Nop())
	actor := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	created, err := svc.Upload(context.Background(), actor, "mnt_1", ports.UploadInput{
		Filename:    "report.pdf",
		ContentType: "application/pdf",
		Size:        128,
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if created.StorageKey == "" {
		t.Error("expected a storage key")
	}
	if _, ok := blobs.stored[created.StorageKey]; !ok {
		t.Error("payload not stored under the metadata key")
	}
	if len(rec.entries) != 1 {
		t.Errorf("expected one activity entry, got: %+v", rec.entries)
	}
}

func TestAttachmentService_Upload_UnknownMaintenance(t *testing.T) {
	svc := NewAttachmentService(newStubAttachmentRepo(), newStubMaintenanceRepo(), newStubBlobStore(), &stubRecorder{}, zerolog.Nop())
	actor := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	_, err := svc.Upload(context.Background(), actor, "mnt_missing", ports.UploadInput{Filename: "x"})
	if !errors.Is(err, domain.ErrMaintenanceNotFound) {
		t.Errorf("expected ErrMaintenanceNotFound, got: %v", err)
	}
}

func TestAttachmentService_Upload_OwnershipPolicy(t *testing.T) {
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	blobs := newStubBlobStore()

	svc := NewAttachmentService(att, mnt, blobs, &stubRecorder{}, zerolog.Nop())
	in := ports.UploadInput{Filename: "report.pdf", ContentType: "application/pdf", Size: 128}

	stranger := domain.Principal{ID: "user_2", Role: domain.RoleUser}
	if _, err := svc.Upload(context.Background(), stranger, "mnt_1", in); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-creator USER must be forbidden, got: %v", err)
	}
	if len(blobs.stored) != 0 || len(att.byID) != 0 {
		t.Error("a refused upload must not touch storage")
	}

	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}
	if _, err := svc.Upload(context.Background(), admin, "mnt_1", in); err != nil {
		t.Errorf("admin upload: %v", err)
	}
}

func TestAttachmentService_Delete_OwnershipPolicy(t *testing.T) {
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	att.seed(domain.Attachment{ID: "att_1", MaintenanceID: "mnt_1", StorageKey: "attachments/k1"})
	blobs := newStubBlobStore()
	blobs.stored["attachments/k1"] = 10

	svc := NewAttachmentService(att, mnt, blobs, &stubRecorder{}, zerolog.Nop())

	stranger := domain.Principal{ID: "user_2", Role: domain.RoleUser}
	if err := svc.Delete(context.Background(), stranger, "att_1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("non-creator USER must be forbidden, got: %v", err)
	}
	if _, err := att.FindByID(context.Background(), "att_1"); err != nil {
		t.Error("attachment must survive a refused delete")
	}

	admin := domain.Principal{ID: "admin_1", Role: domain.RoleAdmin}
	if err := svc.Delete(context.Background(), admin, "att_1"); err != nil {
		t.Errorf("admin delete: %v", err)
	}
}

func TestAttachmentService_Upload_BlobFailureAbortsMetadata(t *testing.T) {
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	blobs := newStubBlobStore()
	blobs.putErr = errors.New("s3 unavailable")

	svc := NewAttachmentService(att, mnt, blobs, &stubRecorder{}, zerolog.Nop())
	actor := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	if _, err := svc.Upload(context.Background(), actor, "mnt_1", ports.UploadInput{Filename: "x"}); err == nil {
		t.Fatal("expected an error")
	}
	if len(att.byID) != 0 {
		t.Error("no metadata row may exist after a failed blob write")
	}
}

func TestAttachmentService_Delete_RemovesBlob(t *testing.T) {
	mnt := newStubMaintenanceRepo()
	mnt.seed(domain.Maintenance{ID: "mnt_1", EquipmentID: "eq_1", Status: domain.MaintenancePending, UserID: "user_1"})
	att := newStubAttachmentRepo()
	att.seed(domain.Attachment{ID: "att_1", MaintenanceID: "mnt_1", StorageKey: "attachments/k1"})
	blobs := newStubBlobStore()
	blobs.stored["attachments/k1"] = 10

	svc := NewAttachmentService(att, mnt, blobs, &stubRecorder{}, zerolog.Nop())
	actor := domain.Principal{ID: "user_1", Role: domain.RoleUser}

	if err := svc.Delete(context.Background(), actor, "att_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(blobs.deleted) != 1 || blobs.deleted[0] != "attachments/k1" {
		t.Errorf("blob not deleted: %v", blobs.deleted)
	}
	if err := svc.Delete(context.Background(), actor, "att_1"); !errors.Is(err, domain.ErrAttachmentNotFound) {
		t.Errorf("second delete must be not-found, got: %v", err)
	}
}
