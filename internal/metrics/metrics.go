package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry owns its own prometheus registry so tests can construct as many
// instances as they need without duplicate-registration panics.
type Registry struct {
	reg *prometheus.Registry

	OrderOutcomes  *prometheus.CounterVec // outcome = confirmed | failure kind
	LookupFailures *prometheus.CounterVec // reason = not_found | unreachable | malformed | remote_status
	CreateLatency  prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_create_outcomes_total",
		Help: "Order creation attempts by terminal outcome.",
	}, []string{"outcome"})
	lookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "product_lookup_failures_total",
		Help: "Failed product lookups by classification.",
	}, []string{"reason"})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "order_create_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(outcomes, lookups, latency)
	return &Registry{
		reg:            r,
		OrderOutcomes:  outcomes,
		LookupFailures: lookups,
		CreateLatency:  latency,
	}
}

func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
