package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheusCollector("test", reg)

	collector.RecordHTTPRequest("GET", "/v1/imports", 200, 15*time.Millisecond)
	collector.RecordHTTPRequest("GET", "/v1/imports", 200, 5*time.Millisecond)
	collector.RecordDayImported("Referrers", 12, time.Second)
	collector.RecordDayFailed("rate_limited")
	collector.RecordStatusTransition("finished")
	collector.SetActiveImports(3)

	assert.Equal(t, float64(2), testutil.ToFloat64(collector.httpRequestsTotal.WithLabelValues("GET", "/v1/imports", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.daysImported.WithLabelValues("Referrers")))
	assert.Equal(t, float64(12), testutil.ToFloat64(collector.recordsArchived.WithLabelValues("Referrers")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.daysFailed.WithLabelValues("rate_limited")))
	assert.Equal(t, float64(1), testutil.ToFloat64(collector.statusTransitions.WithLabelValues("finished")))
	assert.Equal(t, float64(3), testutil.ToFloat64(collector.activeImports))

	count, err := testutil.GatherAndCount(reg, "test_import_days_total")
	assert.NoError(t, err)
	assert.Equal(t, 1, count)
}
