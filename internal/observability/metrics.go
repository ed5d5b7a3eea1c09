package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crop_advisor"

// Metrics holds the Prometheus counters, histograms, and gauges for the service.
type Metrics struct {
	// Upstream weather provider.
	UpstreamRequests *prometheus.CounterVec   // labels: endpoint={weather,agriculture}, outcome={success,error,rejected}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint
	WeatherCache     *prometheus.CounterVec   // labels: result={hit,miss}

	// Scoring.
	CropsScored  prometheus.Counter
	AlertsRaised *prometheus.CounterVec // labels: alert

	// HTTP surface.
	HTTPRequestDuration *prometheus.HistogramVec // labels: route, method, status

	// Advisory sweep.
	SweepRunning       prometheus.Gauge
	SweepDuration      prometheus.Histogram
	AdvisoriesProduced prometheus.Counter
	SweepErrors        *prometheus.CounterVec // labels: stage={weather,publish}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.WeatherCache,
		m.CropsScored,
		m.AlertsRaised,
		m.HTTPRequestDuration,
		m.SweepRunning,
		m.SweepDuration,
		m.AdvisoriesProduced,
		m.SweepErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// instances as they like.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Stormglass API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Stormglass API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"endpoint"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		CropsScored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "crops_scored_total",
			Help:      "Total crop suitability scores computed.",
		}),
		AlertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_raised_total",
			Help:      "Agronomic alerts returned, by message.",
		}, []string{"alert"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route pattern, method and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		SweepRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sweep_running",
			Help:      "1 while the advisory sweep loop is active, 0 otherwise.",
		}),
		SweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Duration of one advisory sweep over every place.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
		AdvisoriesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "advisories_produced_total",
			Help:      "Advisories written to the Kafka topic.",
		}),
		SweepErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweep_errors_total",
			Help:      "Advisory sweep failures by stage.",
		}, []string{"stage"}),
	}
}
