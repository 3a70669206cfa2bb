package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "langlens_analysis_seconds",
		Help:    "Time spent analyzing a single document.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ParseFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "langlens_parse_failures_total",
		Help: "Total number of documents whose syntax validation failed.",
	}, []string{"language"})

	FilesAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "langlens_files_analyzed_total",
		Help: "Total number of files analyzed across all scans.",
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "langlens_scan_seconds",
		Help:    "Time spent on a full scan run.",
		Buckets: prometheus.DefBuckets,
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "langlens_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
