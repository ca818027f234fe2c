package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// wildfire risk service.
type Metrics struct {
	AssessmentsTotal   *prometheus.CounterVec // label: level
	AssessmentDuration prometheus.Histogram

	// Historical record store metrics.
	RecordsLoaded prometheus.Gauge
	SourcesFailed prometheus.Counter

	// Active-fire feed metrics.
	ActiveFireChecks *prometheus.CounterVec // label: outcome={hit,miss,error}
	FeedDuration     prometheus.Histogram

	// Danger-zone metrics.
	ZoneObservations prometheus.Gauge
	BroadcastsTotal  prometheus.Counter
	BroadcastErrors  prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		AssessmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "assessments_total",
			Help:      "Completed risk assessments by final danger level.",
		}, []string{"level"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildfire_risk",
			Name:      "assessment_duration_seconds",
			Help:      "Duration of a complete risk assessment including the active-fire check.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		RecordsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_risk",
			Name:      "historical_records_loaded",
			Help:      "Normalized historical fire records held in memory.",
		}),
		SourcesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "historical_sources_failed_total",
			Help:      "Source datasets skipped during load due to read or parse failure.",
		}),
		ActiveFireChecks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "active_fire_checks_total",
			Help:      "Active-fire perimeter checks by outcome.",
		}, []string{"outcome"}),
		FeedDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wildfire_risk",
			Name:      "active_fire_feed_duration_seconds",
			Help:      "Active-fire feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		ZoneObservations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "wildfire_risk",
			Name:      "zone_observations",
			Help:      "Danger-zone observations currently held in memory.",
		}),
		BroadcastsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "zone_broadcasts_total",
			Help:      "Danger-zone observations published to subscribers.",
		}),
		BroadcastErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wildfire_risk",
			Name:      "zone_broadcast_errors_total",
			Help:      "Failed danger-zone broadcast attempts.",
		}),
	}

	prometheus.MustRegister(
		m.AssessmentsTotal,
		m.AssessmentDuration,
		m.RecordsLoaded,
		m.SourcesFailed,
		m.ActiveFireChecks,
		m.FeedDuration,
		m.ZoneObservations,
		m.BroadcastsTotal,
		m.BroadcastErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		AssessmentsTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wildfire_risk", Name: "assessments_total"}, []string{"level"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "wildfire_risk", Name: "assessment_duration_seconds"}),
		RecordsLoaded:      prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wildfire_risk", Name: "historical_records_loaded"}),
		SourcesFailed:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildfire_risk", Name: "historical_sources_failed_total"}),
		ActiveFireChecks:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "wildfire_risk", Name: "active_fire_checks_total"}, []string{"outcome"}),
		FeedDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "wildfire_risk", Name: "active_fire_feed_duration_seconds"}),
		ZoneObservations:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "wildfire_risk", Name: "zone_observations"}),
		BroadcastsTotal:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildfire_risk", Name: "zone_broadcasts_total"}),
		BroadcastErrors:    prometheus.NewCounter(prometheus.CounterOpts{Namespace: "wildfire_risk", Name: "zone_broadcast_errors_total"}),
	}
}
