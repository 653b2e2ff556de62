package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ImportPagesFetched counts catalog source pages fetched by entity type.
	ImportPagesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holocron_import_pages_fetched_total",
		Help: "Total number of catalog source pages fetched",
	}, []string{"entity"})

	// ImportRowsCreated counts catalog rows committed by the importer.
	ImportRowsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holocron_import_rows_created_total",
		Help: "Total number of catalog rows created by imports",
	}, []string{"entity"})

	// ImportRowsSkipped counts source items skipped because the name already exists.
	ImportRowsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holocron_import_rows_skipped_total",
		Help: "Total number of source items skipped as duplicates",
	}, []string{"entity"})

	// ImportRuns counts import runs by outcome.
	ImportRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holocron_import_runs_total",
		Help: "Total number of catalog import runs",
	}, []string{"outcome"})

	// ImportDuration records the wall time of import runs.
	ImportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "holocron_import_duration_seconds",
		Help:    "Catalog import run duration in seconds",
		Buckets: []float64{.1, .5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	// FavoriteMutations counts favorite add/remove outcomes.
	FavoriteMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "holocron_favorite_mutations_total",
		Help: "Total number of favorite mutations by operation, target and outcome",
	}, []string{"operation", "target", "outcome"})
)

// ObserveImport records the outcome and duration of one import run.
func ObserveImport(start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	ImportRuns.WithLabelValues(outcome).Inc()
	ImportDuration.Observe(time.Since(start).Seconds())
}
