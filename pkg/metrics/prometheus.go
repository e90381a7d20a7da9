package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector agrega as métricas da API e das importações
type Collector interface {
	RecordHTTPRequest(method, path string, status int, duration time.Duration)
	RecordDayImported(plugin string, records int, duration time.Duration)
	RecordDayFailed(reason string)
	RecordStatusTransition(status string)
	SetActiveImports(n int)
}

// PrometheusCollector implementa Collector com métricas do Prometheus
type PrometheusCollector struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	daysImported      *prometheus.CounterVec
	recordsArchived   *prometheus.CounterVec
	dayImportDuration *prometheus.HistogramVec
	daysFailed        *prometheus.CounterVec
	statusTransitions *prometheus.CounterVec
	activeImports     prometheus.Gauge
}

// NewPrometheusCollector registra as métricas em reg. reg nil usa o registro padrão.
func NewPrometheusCollector(prefix string, reg prometheus.Registerer) *PrometheusCollector {
	if prefix == "" {
		prefix = "gaimporter"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &PrometheusCollector{
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		daysImported: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_import_days_total",
				Help: "Total number of days imported per plugin",
			},
			[]string{"plugin"},
		),
		recordsArchived: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_archive_records_total",
				Help: "Total number of archive records written per plugin",
			},
			[]string{"plugin"},
		),
		dayImportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_import_day_duration_seconds",
				Help:    "Time spent importing a single day per plugin",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
			},
			[]string{"plugin"},
		),
		daysFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_import_day_failures_total",
				Help: "Total number of failed day imports",
			},
			[]string{"reason"},
		),
		statusTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_import_status_transitions_total",
				Help: "Total number of import status transitions",
			},
			[]string{"status"},
		),
		activeImports: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "_active_imports",
				Help: "Number of imports processed in the last sync run",
			},
		),
	}
}

func (c *PrometheusCollector) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	c.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	c.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordDayImported(plugin string, records int, duration time.Duration) {
	c.daysImported.WithLabelValues(plugin).Inc()
	c.recordsArchived.WithLabelValues(plugin).Add(float64(records))
	c.dayImportDuration.WithLabelValues(plugin).Observe(duration.Seconds())
}

func (c *PrometheusCollector) RecordDayFailed(reason string) {
	c.daysFailed.WithLabelValues(reason).Inc()
}

func (c *PrometheusCollector) RecordStatusTransition(status string) {
	c.statusTransitions.WithLabelValues(status).Inc()
}

func (c *PrometheusCollector) SetActiveImports(n int) {
	c.activeImports.Set(float64(n))
}

// NoopCollector descarta as métricas quando a coleta está desabilitada
type NoopCollector struct{}

func (NoopCollector) RecordHTTPRequest(string, string, int, time.Duration) {}
func (NoopCollector) RecordDayImported(string, int, time.Duration)         {}
func (NoopCollector) RecordDayFailed(string)                               {}
func (NoopCollector) RecordStatusTransition(string)                        {}
func (NoopCollector) SetActiveImports(int)                                 {}
