package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// importsTotal counts import runs by outcome.
	importsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalogue_imports_total",
		Help: "Total number of import runs by outcome",
	}, []string{"status"})

	// importedProducts counts products upserted across all runs.
	importedProducts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogue_import_products_total",
		Help: "Total number of products upserted by import runs",
	})

	// droppedItems counts raw feed items dropped for missing required fields.
	droppedItems = promauto.NewCounter(prometheus.CounterOpts{
		Name: "catalogue_import_items_dropped_total",
		Help: "Total number of feed items dropped during field mapping",
	})

	// importDuration tracks end-to-end import run duration.
	importDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalogue_import_duration_seconds",
		Help:    "End-to-end duration of import runs",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
	})
)
