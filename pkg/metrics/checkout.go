package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records cart sync and order placement outcomes.
type CheckoutMetrics struct {
	syncDuration *prometheus.HistogramVec
	syncFailure  *prometheus.CounterVec
	orderPlaced  *prometheus.CounterVec
	orderFailure *prometheus.CounterVec
}

// NewCheckoutMetrics registers the checkout metrics on the provided
// registerer. A nil registerer yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	syncDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cart_sync_duration_seconds",
		Help:    "Duration of local-to-server cart reconciliation in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	syncFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_sync_failure",
		Help: "Failed cart sync attempts.",
	}, []string{"phase"})
	orderPlaced := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_placed",
		Help: "Successfully placed orders.",
	}, []string{"payment_method"})
	orderFailure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_failure",
		Help: "Failed order placements.",
	}, []string{"payment_method"})
	reg.MustRegister(syncDuration, syncFailure, orderPlaced, orderFailure)
	return &CheckoutMetrics{
		syncDuration: syncDuration,
		syncFailure:  syncFailure,
		orderPlaced:  orderPlaced,
		orderFailure: orderFailure,
	}
}

// ObserveSync records the duration of a sync attempt with its outcome.
func (c *CheckoutMetrics) ObserveSync(outcome string, duration time.Duration) {
	if c == nil || c.syncDuration == nil {
		return
	}
	c.syncDuration.WithLabelValues(normalizeLabel(outcome)).Observe(duration.Seconds())
}

// IncSyncFailure increments the sync failure counter for the given phase.
func (c *CheckoutMetrics) IncSyncFailure(phase string) {
	if c == nil || c.syncFailure == nil {
		return
	}
	c.syncFailure.WithLabelValues(normalizeLabel(phase)).Inc()
}

// IncOrderPlaced increments the placed-order counter for the payment method.
func (c *CheckoutMetrics) IncOrderPlaced(paymentMethod string) {
	if c == nil || c.orderPlaced == nil {
		return
	}
	c.orderPlaced.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

// IncOrderFailure increments the failed-order counter for the payment method.
func (c *CheckoutMetrics) IncOrderFailure(paymentMethod string) {
	if c == nil || c.orderFailure == nil {
		return
	}
	c.orderFailure.WithLabelValues(normalizeLabel(paymentMethod)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
