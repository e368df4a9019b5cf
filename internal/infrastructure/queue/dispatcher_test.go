package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/core/domain"
)

type stubActivityRepo struct {
	mu       sync.Mutex
	inserted []domain.Activity
}

func (r *stubActivityRepo) Insert(_ context.Context, a domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, a)
	return nil
}

func (r *stubActivityRepo) Latest(_ context.Context, _ int) ([]domain.Activity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Activity(nil), r.inserted...), nil
}

func (r *stubActivityRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.inserted)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_PersistsEntries(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < 10; i++ {
		d.Record(domain.Activity{
			ActorID:  "user_1",
			Verb:     domain.ActivityCreated,
			Entity:   domain.EntityEquipment,
			EntityID: "eq_1",
			At:       time.Now(),
		})
	}

	waitFor(t, func() bool { return repo.count() == 10 })
}

func TestDispatcher_SameEntitySameWorker(t *testing.T) {
	d := NewDispatcher(4, &stubActivityRepo{}, zerolog.Nop())

	first := d.shardIndex("entity-abc")
	for i := 0; i < 100; i++ {
		if d.shardIndex("entity-abc") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &stubActivityRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_RecordDoesNotBlockWhenFull(t *testing.T) {
	repo := &stubActivityRepo{}
	d := NewDispatcher(1, repo, zerolog.Nop())
	// Workers never started: the channel fills up and further entries are
	// dropped instead of blocking.

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Record(domain.Activity{Entity: domain.EntityUser, EntityID: "u"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Record blocked on full channel")
	}
}
