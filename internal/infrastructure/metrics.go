package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the dashboard service.
type Metrics struct {
	registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	UploadsTotal    *prometheus.CounterVec
	DatasetRows     prometheus.Gauge
	DatasetColumns  prometheus.Gauge
	ExportsTotal    *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a fresh registry.
// A dedicated registry keeps test runs isolated from the default one.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgauge_http_requests_total",
			Help: "Total HTTP requests by method, path pattern and status code.",
		}, []string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "assetgauge_http_request_duration_seconds",
			Help:    "HTTP request latency by path pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		UploadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgauge_dataset_uploads_total",
			Help: "Dataset upload attempts by outcome.",
		}, []string{"outcome"}),
		DatasetRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "assetgauge_dataset_rows",
			Help: "Row count of the currently loaded dataset.",
		}),
		DatasetColumns: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "assetgauge_dataset_columns",
			Help: "Column count of the currently loaded dataset.",
		}),
		ExportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "assetgauge_exports_total",
			Help: "Dataset exports by format.",
		}, []string{"format"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.UploadsTotal,
		m.DatasetRows,
		m.DatasetColumns,
		m.ExportsTotal,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest records a completed HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// SetDatasetSize updates the dataset gauges after a successful upload.
func (m *Metrics) SetDatasetSize(rows, columns int) {
	m.DatasetRows.Set(float64(rows))
	m.DatasetColumns.Set(float64(columns))
}
