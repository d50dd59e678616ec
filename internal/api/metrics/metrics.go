// Package metrics defines all custom Prometheus metrics for the MedConnect
// appointments API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "medconnect"

// AppointmentsBookedTotal counts successful bookings.
var AppointmentsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked.",
	},
)

// SlotConflictsTotal counts bookings rejected because the slot was taken or unknown.
var SlotConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "slot_conflicts_total",
		Help:      "Total number of bookings rejected because the slot was unavailable.",
	},
)

// StatusTransitionsTotal counts status updates, labelled by target status and outcome.
// outcome is "applied", "invalid_transition", or "forbidden".
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of appointment status transition attempts.",
	},
	[]string{"to", "outcome"},
)

// LoginsTotal counts login attempts labelled by result ("ok" / "rejected").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// AuditEventsTotal counts audit events that completed processing, by target status.
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of status-change audit events recorded.",
	},
	[]string{"status"},
)

// AuditErrorsTotal counts audit events that failed processing.
var AuditErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of audit events that failed processing.",
	},
	[]string{"reason"},
)

// AuditQueueDepth tracks the number of events waiting in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
