package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/maintrack/maintenance-system/internal/api/metrics"
	"github.com/maintrack/maintenance-system/internal/core/domain"
	"github.com/maintrack/maintenance-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher persists audit entries asynchronously through a fixed set of
// workers, sharded by entity id so entries for the same record are written in
// the order they were recorded. Implements ports.ActivityRecorder.
type Dispatcher struct {
	workers []chan domain.Activity
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an audit entry without blocking the caller. When the
// worker channel is full the entry is dropped: the feed is informational and
// must never stall a request.
func (d *Dispatcher) Record(a domain.Activity) {
	i := d.shardIndex(a.EntityID)
	select {
	case d.workers[i] <- a:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
	default:
		metrics.ActivityDroppedTotal.Inc()
		d.log.Warn().
			Str("entity", a.Entity).
			Str("entity_id", a.EntityID).
			Msg("activity entry dropped, worker channel full")
	}
}

// shardIndex maps an entity id deterministically to a worker index.
func (d *Dispatcher) shardIndex(entityID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(entityID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.repo.Insert(ctx, a); err != nil {
				d.log.Error().Err(err).
					Str("entity", a.Entity).
					Str("entity_id", a.EntityID).
					Int("worker_id", id).
					Msg("activity insert failed")
			}
		}
	}
}
