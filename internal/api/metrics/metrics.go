// Package metrics defines and registers all custom Prometheus metrics for the
// attendance API. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the HTTP layer exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// RegistrationsTotal counts completed registrations.
// Label:
//   - role: "admin" or "employee"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of completed user registrations, by role.",
	},
	[]string{"role"},
)

// ClockEventsTotal counts attendance ledger writes.
// Labels:
//   - event: "clock_in" or "clock_out"
//   - result: "ok", "rejected" (AlreadyClockedIn / NoOpenSession), or "error"
var ClockEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "clock_events_total",
		Help:      "Total number of clock-in/clock-out attempts, by outcome.",
	},
	[]string{"event", "result"},
)

// LeaveApplicationsTotal counts leave applications.
// Label:
//   - result: "created", "quota_exceeded", or "invalid"
var LeaveApplicationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_applications_total",
		Help:      "Total number of leave applications, by outcome.",
	},
	[]string{"result"},
)

// LeaveDecisionsTotal counts admin decisions on leave requests.
// Label:
//   - decision: "Approved" or "Rejected"
var LeaveDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leave_decisions_total",
		Help:      "Total number of leave requests decided by an admin.",
	},
	[]string{"decision"},
)
