package metrics_test

import (
	"testing"
	"time"

	"dispatch/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewDispatchMetrics(reg)

	m.ParcelCreated()
	m.ParcelCreated()
	m.DriverAssigned()
	m.StatusChanged("picked_up")
	m.StatusChanged("")
	m.StoreFailure("get parcel")
	m.ObserveViewRefresh("dispatcher_new", 25*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)

	values := make(map[string]int)
	for _, mf := range families {
		values[mf.GetName()] = len(mf.GetMetric())
	}

	assert.Equal(t, 1, values["parcels_created_total"])
	assert.Equal(t, 1, values["parcel_assignments_total"])
	assert.Equal(t, 2, values["parcel_transitions_total"])
	assert.Equal(t, 1, values["store_failures_total"])
	assert.Equal(t, 1, values["view_refresh_duration_seconds"])

	count, err := testutil.GatherAndCount(reg, "parcels_created_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDispatchMetrics_CounterValues(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewDispatchMetrics(reg)

	m.StatusChanged("delivered")
	m.StatusChanged("delivered")

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "parcel_transitions_total" {
			continue
		}
		require.Len(t, mf.GetMetric(), 1)
		assert.InDelta(t, 2.0, mf.GetMetric()[0].GetCounter().GetValue(), 0.0001)
		assert.Equal(t, "delivered", mf.GetMetric()[0].GetLabel()[0].GetValue())
	}
}

func TestDispatchMetrics_NilSafe(t *testing.T) {
	var nilMetrics *metrics.DispatchMetrics
	unregistered := metrics.NewDispatchMetrics(nil)

	for _, m := range []*metrics.DispatchMetrics{nilMetrics, unregistered} {
		assert.NotPanics(t, func() {
			m.ParcelCreated()
			m.DriverAssigned()
			m.StatusChanged("assigned")
			m.StoreFailure("x")
			m.ObserveViewRefresh("v", time.Second)
		})
	}
}
