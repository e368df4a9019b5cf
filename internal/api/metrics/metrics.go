// Package metrics defines all custom Prometheus metrics for the maintenance
// API. It is the single source of truth for metric names, labels, and help
// strings; metrics self-register with the default registry via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "maintenance"

// RecordsMutatedTotal counts successful write operations per entity kind.
// Labels:
//   - entity: "user", "equipment", "group", "maintenance", "attachment"
//   - action: "created", "updated", "deleted"
var RecordsMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_mutated_total",
		Help:      "Total number of successful write operations, by entity and action.",
	},
	[]string{"entity", "action"},
)

// AuthFailuresTotal counts rejected requests at the authentication layer.
// Label:
//   - reason: "missing_token", "malformed", "expired", "signature"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by bearer token verification.",
	},
	[]string{"reason"},
)

// StatsCacheTotal counts stats cache lookups.
// Label:
//   - result: "hit" (served from Redis) or "miss" (recomputed)
var StatsCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_total",
		Help:      "Total number of stats cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ActivityQueueDepth tracks the current number of audit entries waiting in
// each writer worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of audit entries pending in each writer worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityDroppedTotal counts audit entries dropped because a worker channel
// was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Total number of audit entries dropped due to a full worker channel.",
	},
)

// UploadsTotal counts attachment uploads, by outcome.
// Label:
//   - result: "ok" or "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of attachment upload attempts, by result.",
	},
	[]string{"result"},
)
