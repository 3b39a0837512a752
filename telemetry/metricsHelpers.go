package telemetry

import "time"

// AddRecordsLoaded counts raw records read from the source.
func AddRecordsLoaded(n int) {
	recordsLoadedTotal.Add(float64(n))
}

// Adds n dropped records for a filter reason.
// Reasons: "state", "missing_keys", "empty_value", "date".
func AddRecordsFiltered(reason string, n int) {
	recordsFilteredTotal.WithLabelValues(reason).Add(float64(n))
}

// IncReceiptsAccepted increments the accepted counter.
func IncReceiptsAccepted() {
	receiptsAcceptedTotal.Inc()
}

// Increments the rejected counter with a bounded field label.
func IncReceiptsRejected(field string) {
	if field == "" {
		field = "unknown"
	}
	receiptsRejectedTotal.WithLabelValues(field).Inc()
}

// Observes the duration of a whole run.
func ObserveRun(d time.Duration) {
	pipelineRunDurationSeconds.Observe(d.Seconds())
}
