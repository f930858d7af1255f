package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// almanac service.
type Metrics struct {
	EntriesComputed  prometheus.Counter
	EntriesPublished prometheus.Counter
	PublishErrors    prometheus.Counter
	ComputeErrors    *prometheus.CounterVec // labels: reason={validation,never_rises,never_sets}
	PublisherRunning prometheus.Gauge

	// Publish cycle metrics.
	BatchSize       prometheus.Histogram
	PublishDuration prometheus.Histogram

	// HTTP API metrics.
	SunRequests *prometheus.CounterVec // labels: outcome={ok,never_rises,never_sets,invalid}

	// Geocoding metrics.
	GeocodeRequests    *prometheus.CounterVec   // labels: method={forward,reverse}, outcome={success,error,empty}
	GeocodeCache       *prometheus.CounterVec   // labels: method={forward,reverse}, result={hit,miss}
	GeocodeAPIDuration *prometheus.HistogramVec // labels: method={forward,reverse}
	GeocodeEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		EntriesComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar_almanac",
			Name:      "entries_computed_total",
			Help:      "Total almanac entries computed.",
		}),
		EntriesPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar_almanac",
			Name:      "entries_published_total",
			Help:      "Total almanac entries written to the sink.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "solar_almanac",
			Name:      "publish_errors_total",
			Help:      "Total failed publish attempts.",
		}),
		ComputeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solar_almanac",
			Name:      "compute_errors_total",
			Help:      "Entry computation failures by reason.",
		}, []string{"reason"}),
		PublisherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solar_almanac",
			Name:      "publisher_running",
			Help:      "1 when the publisher loop is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "solar_almanac",
			Name:      "batch_size",
			Help:      "Number of entries per publish cycle.",
			Buckets:   []float64{1, 7, 14, 30, 60, 120, 250, 500},
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "solar_almanac",
			Name:      "publish_duration_seconds",
			Help:      "Duration of a complete compute-and-publish cycle.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5},
		}),
		SunRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solar_almanac",
			Name:      "sun_requests_total",
			Help:      "Calculator API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solar_almanac",
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "solar_almanac",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by method and result.",
		}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "solar_almanac",
			Name:      "geocode_api_duration_seconds",
			Help:      "Mapbox API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
		GeocodeEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "solar_almanac",
			Name:      "geocode_enabled",
			Help:      "1 when place-name resolution is enabled, 0 otherwise.",
		}),
	}

	prometheus.MustRegister(
		m.EntriesComputed,
		m.EntriesPublished,
		m.PublishErrors,
		m.ComputeErrors,
		m.PublisherRunning,
		m.BatchSize,
		m.PublishDuration,
		m.SunRequests,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.GeocodeAPIDuration,
		m.GeocodeEnabled,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		EntriesComputed:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar_almanac", Name: "entries_computed_total"}),
		EntriesPublished:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar_almanac", Name: "entries_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "solar_almanac", Name: "publish_errors_total"}),
		ComputeErrors:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "solar_almanac", Name: "compute_errors_total"}, []string{"reason"}),
		PublisherRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "solar_almanac", Name: "publisher_running"}),
		BatchSize:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "solar_almanac", Name: "batch_size"}),
		PublishDuration:    prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "solar_almanac", Name: "publish_duration_seconds"}),
		SunRequests:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "solar_almanac", Name: "sun_requests_total"}, []string{"outcome"}),
		GeocodeRequests:    prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "solar_almanac", Name: "geocode_requests_total"}, []string{"method", "outcome"}),
		GeocodeCache:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "solar_almanac", Name: "geocode_cache_total"}, []string{"method", "result"}),
		GeocodeAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "solar_almanac", Name: "geocode_api_duration_seconds"}, []string{"method"}),
		GeocodeEnabled:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "solar_almanac", Name: "geocode_enabled"}),
	}
}
