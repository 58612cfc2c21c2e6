// Package metrics defines all custom Prometheus metrics for the identity
// admin relay. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at package init; the router
// exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "identity_relay"

// GateDecisionsTotal counts authorization gate outcomes.
// Label:
//   - result: "permitted", "unauthenticated", "forbidden", or "fault"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of authorization gate decisions, by result.",
	},
	[]string{"result"},
)

// RelayOperationsTotal counts relayed admin operations.
// Labels:
//   - operation: "create_user", "list_users", or "delete_user"
//   - outcome: "ok", "bad_request", or "provider_error"
var RelayOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_operations_total",
		Help:      "Total number of relayed admin operations, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// ProviderRequestDuration measures the round-trip latency of outbound calls
// to the identity provider.
// Label:
//   - call: "resolve_token", "create_user", "list_users", "delete_user", "ping"
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of outbound identity-provider calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"call"},
)
