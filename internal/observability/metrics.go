package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParsingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refscope_parsing_seconds",
		Help:    "Time spent parsing and classifying a source file.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ReferencesClassified = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "refscope_references_classified_total",
		Help: "Total number of classified references by language and usage label.",
	}, []string{"language", "label"})

	IndexFiles = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "refscope_index_files_total",
		Help: "Total number of files in the reference index.",
	})

	IndexSymbols = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "refscope_index_symbols_total",
		Help: "Total number of distinct symbols in the reference index.",
	})

	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "refscope_scan_seconds",
		Help:    "Time spent on scan tasks.",
		Buckets: prometheus.DefBuckets,
	}, []string{"task"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refscope_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherEventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "refscope_watcher_events_dropped_total",
		Help: "Total number of file system events dropped by rate limiting.",
	})
)
