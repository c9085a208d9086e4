package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	SummaryBuilds   prometheus.Counter
	SummaryFailures prometheus.Counter
	SummaryDuration prometheus.Histogram
	LowStockItems   prometheus.Gauge
	OrdersIngested  prometheus.Counter
	EndpointLatency *prometheus.HistogramVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		SummaryBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "martshift_dashboard_summary_builds_total",
			Help: "Total number of dashboard summaries built",
		}),
		SummaryFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "martshift_dashboard_summary_failures_total",
			Help: "Total number of dashboard summary builds aborted by a reader failure",
		}),
		SummaryDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "martshift_dashboard_summary_duration_seconds",
			Help:    "Time spent fetching the snapshot and building the summary",
			Buckets: prometheus.DefBuckets,
		}),
		LowStockItems: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "martshift_low_stock_items",
			Help: "Low-stock item count as of the latest summary build",
		}),
		OrdersIngested: promauto.NewCounter(prometheus.CounterOpts{
			Name: "martshift_orders_ingested_total",
			Help: "Orders recorded from the POS event stream",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "martshift_endpoint_latency_seconds",
			Help:    "Latency of HTTP endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}
