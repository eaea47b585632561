package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Entry metrics
	EntriesCreated prometheus.Counter
	EntriesDeleted prometheus.Counter

	// Import metrics
	EntriesImported *prometheus.CounterVec

	// Normalization metrics
	NormalizeRuns    prometheus.Counter
	NormalizeChanged prometheus.Counter

	// Matcher metrics
	MatcherRuns     prometheus.Counter
	MatcherMarked   prometheus.Counter
	MatcherDuration prometheus.Histogram
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "concilia_entries_created_total",
			Help: "Total number of entries created",
		}),
		EntriesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "concilia_entries_deleted_total",
			Help: "Total number of entries deleted",
		}),

		EntriesImported: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "concilia_entries_imported_total",
				Help: "Total number of entries imported by source",
			},
			[]string{"source"},
		),

		NormalizeRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "concilia_normalize_runs_total",
			Help: "Total number of normalization passes",
		}),
		NormalizeChanged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "concilia_normalize_changed_total",
			Help: "Total number of entries rewritten by normalization passes",
		}),

		MatcherRuns: promauto.NewCounter(prometheus.CounterOpts{
			Name: "concilia_matcher_runs_total",
			Help: "Total number of matcher runs",
		}),
		MatcherMarked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "concilia_matcher_marked_total",
			Help: "Total number of entries marked reconciled by the matcher",
		}),
		MatcherDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "concilia_matcher_duration_seconds",
			Help:    "Duration of matcher runs",
			Buckets: prometheus.DefBuckets,
		}),
	}
}
