// Package metrics defines and registers all custom Prometheus metrics for the
// Unify POS API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pos"

// ── Checkout metrics ──────────────────────────────────────────────────────────

// SalesCompletedTotal counts committed sales.
// Label:
//   - payment_method: the tender name used at checkout (e.g. "Cash", "M-Pesa")
var SalesCompletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_completed_total",
		Help:      "Total number of sales committed, by payment method.",
	},
	[]string{"payment_method"},
)

// CheckoutFailuresTotal counts checkout attempts that did not commit.
// Label:
//   - reason: short description of the failure (e.g. "insufficient_stock",
//     "empty_cart", "in_flight", "persist_failed")
var CheckoutFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_failures_total",
		Help:      "Total number of checkout attempts that failed.",
	},
	[]string{"reason"},
)

// CheckoutDuration measures how long a checkout takes from cart load to
// committed sale (or failure).
// Label:
//   - result: "completed" or "failed"
var CheckoutDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "checkout_duration_seconds",
		Help:      "Duration of checkout processing from cart load to persistence.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"result"},
)

// ── Access control metrics ────────────────────────────────────────────────────

// AccessDeniedTotal counts guard denials.
// Label:
//   - requirement: the unmet requirement kind ("role", "roles", "permission",
//     "session")
var AccessDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "access_denied_total",
		Help:      "Total number of requests denied by the route guard, by unmet requirement.",
	},
	[]string{"requirement"},
)

// ── Stock movement metrics ────────────────────────────────────────────────────

// MovementsProcessedTotal counts stock movement events by outcome.
// Label:
//   - result: "processed", "duplicate", or "error"
var MovementsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "movements_processed_total",
		Help:      "Total number of stock movement events, by processing result.",
	},
	[]string{"result"},
)

// MovementsQueueDepth tracks the current number of movement events waiting in
// each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MovementsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "movements_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// LowStockWarningsTotal counts movements that left an entry at or below the
// low-stock threshold.
var LowStockWarningsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "low_stock_warnings_total",
		Help:      "Total number of stock movements that left an entry at or below the low-stock threshold.",
	},
)
