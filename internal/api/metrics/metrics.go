// Package metrics defines and registers all custom Prometheus metrics for the
// shift board API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto and are served by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "shiftboard"

// ── Follow-up metrics ─────────────────────────────────────────────────────────

// FollowUpsProcessedTotal counts drafted follow-up messages.
// Label:
//   - result: "sent", "error"
var FollowUpsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "followups_processed_total",
		Help:      "Total number of interest follow-ups processed, by result.",
	},
	[]string{"result"},
)

// FollowUpQueueDepth tracks pending follow-ups in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var FollowUpQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "followup_queue_depth",
		Help:      "Current number of follow-ups pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// FollowUpDuration measures one follow-up from dequeue to stored message.
var FollowUpDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "followup_duration_seconds",
		Help:      "Duration of follow-up processing, text generation included.",
		Buckets:   prometheus.DefBuckets,
	},
)

// ── Text generation metrics ───────────────────────────────────────────────────

// TextGenRequestsTotal counts text generation calls.
// Labels:
//   - kind: "describe", "followup", "insight"
//   - result: "ok", "fallback", "unconfigured"
var TextGenRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "textgen_requests_total",
		Help:      "Total number of text generation calls, by kind and result.",
	},
	[]string{"kind", "result"},
)

// ── Scheduling metrics ────────────────────────────────────────────────────────

// WorkItemsCreatedTotal counts newly posted work items.
// Label:
//   - time_slot: "Morning", "Noon" or "Night"
var WorkItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "work_items_created_total",
		Help:      "Total number of work items created, by time slot.",
	},
	[]string{"time_slot"},
)

// StatusUpdatesTotal counts answers recorded on worker statuses.
// Labels:
//   - field: "interest" or "attendance"
//   - value: "yes" or "no"
var StatusUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_updates_total",
		Help:      "Total number of worker status updates, by field and value.",
	},
	[]string{"field", "value"},
)

// RemindersSentTotal counts reminder messages delivered to workers.
var RemindersSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_sent_total",
		Help:      "Total number of reminder messages sent.",
	},
)
