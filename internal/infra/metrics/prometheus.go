package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motion_analyses_total",
		Help: "Total number of analysis runs, by outcome",
	}, []string{"outcome"})

	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "motion_analysis_stage_duration_seconds",
		Help:    "Duration of each analysis pipeline stage",
		Buckets: []float64{0.05, 0.25, 1, 5, 10, 30, 60, 120, 300},
	}, []string{"stage"})

	ExtractionWarningsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motion_extraction_warnings_total",
		Help: "Pose extractions that failed without aborting the run",
	})

	PredictedClassTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motion_predicted_class_total",
		Help: "Successful predictions, by predicted class",
	}, []string{"class"})

	UploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "motion_upload_bytes_total",
		Help: "Bytes of video persisted from uploads",
	})

	ReportFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "motion_report_failures_total",
		Help: "Best-effort reporting failures, by sink",
	}, []string{"sink"})
)
