package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs shared by the service tests.
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byID        map[string]*domain.User
	nextID      int
	listErr     error
	updateCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[string]*domain.User)}
}

func (r *stubUserRepo) seed(u domain.User) *domain.User {
	cp := u
	r.byID[cp.ID] = &cp
	return &cp
}

func (r *stubUserRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	for _, existing := range r.byID {
		if existing.Email == u.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	r.nextID++
	cp := *u
	cp.ID = fmt.Sprintf("user_%d", r.nextID)
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.User, error) {
	var out []*domain.User
	for _, id := range ids {
		if u, ok := r.byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*domain.User
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	r.updateCalls++
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Role != "" {
		u.Role = in.Role
	}
	return u, nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubEquipmentRepo struct {
	byID       map[string]*domain.Equipment
	nextID     int
	groupCount map[string]int64
}

func newStubEquipmentRepo() *stubEquipmentRepo {
	return &stubEquipmentRepo{
		byID:       make(map[string]*domain.Equipment),
		groupCount: make(map[string]int64),
	}
}

func (r *stubEquipmentRepo) seed(e domain.Equipment) *domain.Equipment {
	cp := e
	r.byID[cp.ID] = &cp
	return &cp
}

func (r *stubEquipmentRepo) Create(_ context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	r.nextID++
	cp := *e
	cp.ID = fmt.Sprintf("eq_%d", r.nextID)
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *stubEquipmentRepo) FindByID(_ context.Context, id string) (*domain.Equipment, error) {
	if e, ok := r.byID[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEquipmentNotFound
}

func (r *stubEquipmentRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for _, id := range ids {
		if e, ok := r.byID[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *stubEquipmentRepo) List(_ context.Context) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for _, e := range r.byID {
		out = append(out, e)
	}
	return out, nil
}

func (r *stubEquipmentRepo) Latest(_ context.Context, limit int) ([]*domain.Equipment, error) {
	all, _ := r.List(context.Background())
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubEquipmentRepo) Update(_ context.Context, e *domain.Equipment) (*domain.Equipment, error) {
	if _, ok := r.byID[e.ID]; !ok {
		return nil, domain.ErrEquipmentNotFound
	}
	cp := *e
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *stubEquipmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrEquipmentNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubEquipmentRepo) CountByGroup(_ context.Context, groupID string) (int64, error) {
	return r.groupCount[groupID], nil
}

type stubGroupRepo struct {
	byID   map[string]*domain.EquipmentGroup
	nextID int
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{byID: make(map[string]*domain.EquipmentGroup)}
}

func (r *stubGroupRepo) seed(g domain.EquipmentGroup) *domain.EquipmentGroup {
	cp := g
	r.byID[cp.ID] = &cp
	return &cp
}

func (r *stubGroupRepo) Create(_ context.Context, g *domain.EquipmentGroup) (*domain.EquipmentGroup, error) {
	r.nextID++
	cp := *g
	cp.ID = fmt.Sprintf("grp_%d", r.nextID)
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id string) (*domain.EquipmentGroup, error) {
	if g, ok := r.byID[id]; ok {
		return g, nil
	}
	return nil, domain.ErrGroupNotFound
}

func (r *stubGroupRepo) FindByIDs(_ context.Context, ids []string) ([]*domain.EquipmentGroup, error) {
	var out []*domain.EquipmentGroup
	for _, id := range ids {
		if g, ok := r.byID[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubGroupRepo) ListByOwner(_ context.Context, userID string) ([]*domain.EquipmentGroup, error) {
	var out []*domain.EquipmentGroup
	for _, g := range r.byID {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *stubGroupRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrGroupNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubMaintenanceRepo struct {
	byID   map[string]*domain.Maintenance
	nextID int
}

func newStubMaintenanceRepo() *stubMaintenanceRepo {
	return &stubMaintenanceRepo{byID: make(map[string]*domain.Maintenance)}
}

func (r *stubMaintenanceRepo) seed(m domain.Maintenance) *domain.Maintenance {
	cp := m
	r.byID[cp.ID] = &cp
	return &cp
}

func (r *stubMaintenanceRepo) Create(_ context.Context, m *domain.Maintenance) (*domain.Maintenance, error) {
	r.nextID++
	cp := *m
	cp.ID = fmt.Sprintf("mnt_%d", r.nextID)
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *stubMaintenanceRepo) FindByID(_ context.Context, id string) (*domain.Maintenance, error) {
	if m, ok := r.byID[id]; ok {
		return m, nil
	}
	return nil, domain.ErrMaintenanceNotFound
}

func (r *stubMaintenanceRepo) List(_ context.Context) ([]*domain.Maintenance, error) {
	var out []*domain.Maintenance
	for _, m := range r.byID {
		out = append(out, m)
	}
	return out, nil
}

func (r *stubMaintenanceRepo) ListByEquipment(_ context.Context, equipmentID string) ([]*domain.Maintenance, error) {
	var out []*domain.Maintenance
	for _, m := range r.byID {
		if m.EquipmentID == equipmentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMaintenanceRepo) Latest(_ context.Context, limit int) ([]*domain.Maintenance, error) {
	all, _ := r.List(context.Background())
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubMaintenanceRepo) Update(_ context.Context, m *domain.Maintenance) (*domain.Maintenance, error) {
	if _, ok := r.byID[m.ID]; !ok {
		return nil, domain.ErrMaintenanceNotFound
	}
	cp := *m
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *stubMaintenanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrMaintenanceNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubAttachmentRepo struct {
	byID   map[string]*domain.Attachment
	nextID int
}

func newStubAttachmentRepo() *stubAttachmentRepo {
	return &stubAttachmentRepo{byID: make(map[string]*domain.Attachment)}
}

func (r *stubAttachmentRepo) seed(a domain.Attachment) *domain.Attachment {
	cp := a
	r.byID[cp.ID] = &cp
	return &cp
}

func (r *stubAttachmentRepo) Create(_ context.Context, a *domain.Attachment) (*domain.Attachment, error) {
	r.nextID++
	cp := *a
	cp.ID = fmt.Sprintf("att_%d", r.nextID)
	r.byID[cp.ID] = &cp
	return &cp, nil
}

func (r *stubAttachmentRepo) FindByID(_ context.Context, id string) (*domain.Attachment, error) {
	if a, ok := r.byID[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAttachmentNotFound
}

func (r *stubAttachmentRepo) ListByMaintenance(_ context.Context, maintenanceID string) ([]*domain.Attachment, error) {
	var out []*domain.Attachment
	for _, a := range r.byID {
		if a.MaintenanceID == maintenanceID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *stubAttachmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAttachmentNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubBlobStore struct {
	stored     map[string]int64
	deleted    []string
	putErr     error
	presignErr error
}

func newStubBlobStore() *stubBlobStore {
	return &stubBlobStore{stored: make(map[string]int64)}
}

func (b *stubBlobStore) Put(_ context.Context, key, _ string, size int64, _ io.Reader) error {
	if b.putErr != nil {
		return b.putErr
	}
	b.stored[key] = size
	return nil
}

func (b *stubBlobStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	if b.presignErr != nil {
		return "", b.presignErr
	}
	return "https://blobs.example.com/" + key, nil
}

func (b *stubBlobStore) Delete(_ context.Context, key string) error {
	b.deleted = append(b.deleted, key)
	delete(b.stored, key)
	return nil
}

// stubRecorder collects activity entries synchronously.
type stubRecorder struct {
	entries []domain.Activity
}

func (r *stubRecorder) Record(a domain.Activity) {
	r.entries = append(r.entries, a)
}

// noopCache always misses and remembers what was stored.
type noopCache struct {
	stored map[string][]byte
}

func newNoopCache() *noopCache {
	return &noopCache{stored: make(map[string][]byte)}
}

func (c *noopCache) Get(_ context.Context, _ string) ([]byte, bool) { return nil, false }

func (c *noopCache) Set(_ context.Context, key string, payload []byte) {
	c.stored[key] = payload
}

// seededCache serves a fixed payload for one key.
type seededCache struct {
	key     string
	payload []byte
	sets    int
}

func (c *seededCache) Get(_ context.Context, key string) ([]byte, bool) {
	if key == c.key {
		return c.payload, true
	}
	return nil, false
}

func (c *seededCache) Set(_ context.Context, _ string, _ []byte) { c.sets++ }

type stubStatsRepo struct {
	equipmentTotal   int64
	maintenanceTotal int64
	creators         []ports.CreatorCount
	dates            []time.Time
	equipmentStatus  []ports.StatusCount
	maintStatus      []ports.StatusCount
}

func (r *stubStatsRepo) CountEquipment(_ context.Context) (int64, error) {
	return r.equipmentTotal, nil
}

func (r *stubStatsRepo) CountMaintenance(_ context.Context) (int64, error) {
	return r.maintenanceTotal, nil
}

func (r *stubStatsRepo) TopCreators(_ context.Context, limit int) ([]ports.CreatorCount, error) {
	if len(r.creators) > limit {
		return r.creators[:limit], nil
	}
	return r.creators, nil
}

func (r *stubStatsRepo) MaintenanceDatesBetween(_ context.Context, from, to time.Time) ([]time.Time, error) {
	var out []time.Time
	for _, d := range r.dates {
		if !d.Before(from) && !d.After(to) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *stubStatsRepo) EquipmentStatusCounts(_ context.Context) ([]ports.StatusCount, error) {
	return r.equipmentStatus, nil
}

func (r *stubStatsRepo) MaintenanceStatusCounts(_ context.Context) ([]ports.StatusCount, error) {
	return r.maintStatus, nil
}

type stubActivityRepo struct {
	entries []domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, a domain.Activity) error {
	r.entries = append(r.entries, a)
	return nil
}

func (r *stubActivityRepo) Latest(_ context.Context, limit int) ([]domain.Activity, error) {
	if len(r.entries) > limit {
		return r.entries[:limit], nil
	}
	return r.entries, nil
}
