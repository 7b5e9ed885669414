package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	RecordsLoaded       prometheus.Counter
	RecordsSkipped      prometheus.Counter
	Normalizations      *prometheus.CounterVec
	FindingsTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	TimezoneMapLoads    *prometheus.CounterVec
	TimezoneMapSize     prometheus.Gauge
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics registered on reg.
// Pass prometheus.DefaultRegisterer to expose them through promhttp.Handler().
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RecordsLoaded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_loaded_total",
			Help:      "The total number of flight records enriched and handed to the analyzer",
		}),
		RecordsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "The total number of flight records dropped because a timestamp could not be parsed",
		}),
		Normalizations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timestamp_normalizations_total",
			Help:      "Local to UTC conversions by outcome",
		}, []string{"status"}),
		FindingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findings_total",
			Help:      "The total number of inconsistencies reported",
		}, []string{"check"}),
		AnalysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "check_duration_seconds",
			Help:      "Time taken to run a consistency check over a batch",
			Buckets:   prometheus.DefBuckets,
		}, []string{"check"}),
		TimezoneMapLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timezone_map_loads_total",
			Help:      "Airport timezone map reloads by result",
		}, []string{"result"}),
		TimezoneMapSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "timezone_map_entries",
			Help:      "Number of airport codes in the current timezone map",
		}),
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests processed by endpoint, method, and status code",
		}, []string{"endpoint", "method", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint", "method"}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
