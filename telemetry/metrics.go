package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Ingestion metrics
var (
	recordsLoadedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "records_loaded_total",
			Help: "Total number of raw operation records read from the source document.",
		},
	)

	recordsFilteredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_filtered_total",
			Help: "Total number of raw records dropped before sorting, partitioned by reason.",
		},
		[]string{"reason"}, // reasons: state | missing_keys | empty_value | date
	)
)

// Receipt metrics
var (
	receiptsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "receipts_accepted_total",
			Help: "Total number of complete records accepted for rendering.",
		},
	)

	receiptsRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "receipts_rejected_total",
			Help: "Total number of incomplete records skipped by the driver, partitioned by missing field.",
		},
		[]string{"field"}, // fields: id | state | date | operationAmount | description | to | from
	)

	pipelineRunDurationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pipeline_run_duration_seconds",
			Help:    "Wall time of one load-filter-render run in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
	)
)

// InitMetrics called on startup
func InitMetrics() {
	prometheus.MustRegister(
		recordsLoadedTotal,
		recordsFilteredTotal,
		receiptsAcceptedTotal,
		receiptsRejectedTotal,
		pipelineRunDurationSeconds,
	)
}

// WriteTextfile dumps the default registry in the text exposition format, for
// the node exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
