// Package metrics exposes the Prometheus instruments of the dispatch service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// DispatchMetrics records parcel lifecycle activity. All methods are safe on
// a nil receiver and on an instance built without a registerer.
type DispatchMetrics struct {
	created       prometheus.Counter
	assignments   prometheus.Counter
	transitions   *prometheus.CounterVec
	storeFailures *prometheus.CounterVec
	viewRefresh   *prometheus.HistogramVec
}

// NewDispatchMetrics registers the dispatch metrics on reg.
func NewDispatchMetrics(reg prometheus.Registerer) *DispatchMetrics {
	if reg == nil {
		return &DispatchMetrics{}
	}

	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parcels_created_total",
		Help: "Parcels created.",
	})
	assignments := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "parcel_assignments_total",
		Help: "Driver assignments written, including re-assignments.",
	})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "parcel_transitions_total",
		Help: "Status transitions written, by target status.",
	}, []string{"status"})
	storeFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_failures_total",
		Help: "Document store failures, by operation.",
	}, []string{"operation"})
	viewRefresh := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "view_refresh_duration_seconds",
		Help:    "Duration of view projections in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"view"})

	reg.MustRegister(created, assignments, transitions, storeFailures, viewRefresh)

	return &DispatchMetrics{
		created:       created,
		assignments:   assignments,
		transitions:   transitions,
		storeFailures: storeFailures,
		viewRefresh:   viewRefresh,
	}
}

// ParcelCreated increments parcels_created_total.
func (m *DispatchMetrics) ParcelCreated() {
	if m == nil || m.created == nil {
		return
	}
	m.created.Inc()
}

// DriverAssigned increments parcel_assignments_total.
func (m *DispatchMetrics) DriverAssigned() {
	if m == nil || m.assignments == nil {
		return
	}
	m.assignments.Inc()
}

// StatusChanged increments parcel_transitions_total for the target status.
func (m *DispatchMetrics) StatusChanged(status string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(status)).Inc()
}

// StoreFailure increments store_failures_total for the operation.
func (m *DispatchMetrics) StoreFailure(operation string) {
	if m == nil || m.storeFailures == nil {
		return
	}
	m.storeFailures.WithLabelValues(normalizeLabel(operation)).Inc()
}

// ObserveViewRefresh records how long one projection of view took.
func (m *DispatchMetrics) ObserveViewRefresh(view string, d time.Duration) {
	if m == nil || m.viewRefresh == nil {
		return
	}
	m.viewRefresh.WithLabelValues(normalizeLabel(view)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
