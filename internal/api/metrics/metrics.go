// Package metrics defines and registers all custom Prometheus metrics for the
// tracking API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at init time
// via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tracking"

// ShipmentsCreatedTotal counts successfully created shipments.
var ShipmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "shipments_created_total",
		Help:      "Total number of shipments created.",
	},
)

// TrackingNumberRetriesTotal counts tracking-number collisions that forced a
// regenerate-and-retry on the create path.
var TrackingNumberRetriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tracking_number_retries_total",
		Help:      "Total number of tracking number collisions retried during shipment creation.",
	},
)

// EventsRecordedTotal counts tracking events appended to the ledger.
// Label:
//   - status: the status recorded by the event (e.g. "Delivered")
var EventsRecordedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_recorded_total",
		Help:      "Total number of tracking events recorded, by status.",
	},
	[]string{"status"},
)

// TrackingLookupsTotal counts public tracking lookups.
// Label:
//   - result: "cache_hit", "store", or "not_found"
var TrackingLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of public tracking lookups, by result.",
	},
	[]string{"result"},
)

// NotificationsDispatchedTotal counts notification dispatch attempts.
// Label:
//   - result: "success" or "failure"
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notification dispatch attempts, by result.",
	},
	[]string{"result"},
)
