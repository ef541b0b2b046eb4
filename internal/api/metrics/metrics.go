// Package metrics defines and registers all custom Prometheus metrics for the
// translation office API. It is the single source of truth for metric names,
// labels, and help strings; promauto registers everything with the default
// registry at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "translation"

// ── Workflow metrics ──────────────────────────────────────────────────────────

// ProjectsCreatedTotal counts newly created projects by target language.
var ProjectsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects created, by target language.",
	},
	[]string{"target_language"},
)

// AssignmentsTotal counts assignment outcomes at project creation.
// Label:
//   - outcome: "assigned" or "no_translator"
var AssignmentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignments_total",
		Help:      "Total number of translator assignment attempts, by outcome.",
	},
	[]string{"outcome"},
)

// ── Event pipeline metrics ────────────────────────────────────────────────────

// EventsPublishedTotal counts events accepted by the dispatcher.
var EventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_published_total",
		Help:      "Total number of domain events accepted for dispatch, by kind.",
	},
	[]string{"kind"},
)

// EventsDroppedTotal counts events discarded because a worker buffer was full.
var EventsDroppedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_dropped_total",
		Help:      "Total number of domain events dropped at publish time, by kind.",
	},
	[]string{"kind"},
)

// EventsQueueDepth tracks the number of events waiting in each worker channel.
var EventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts outbound notifications by event kind.
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications handed to the sender, by event kind.",
	},
	[]string{"kind"},
)

// NotificationsDedupedTotal counts notifications skipped by the dedup store.
var NotificationsDedupedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_deduped_total",
		Help:      "Total number of duplicate notifications skipped, by event kind.",
	},
	[]string{"kind"},
)
