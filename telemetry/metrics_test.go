package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	loaded := testutil.ToFloat64(recordsLoadedTotal)
	AddRecordsLoaded(4)
	if got := testutil.ToFloat64(recordsLoadedTotal) - loaded; got != 4 {
		t.Errorf("records_loaded_total grew by %v, want 4", got)
	}

	state := testutil.ToFloat64(recordsFilteredTotal.WithLabelValues("state"))
	AddRecordsFiltered("state", 2)
	if got := testutil.ToFloat64(recordsFilteredTotal.WithLabelValues("state")) - state; got != 2 {
		t.Errorf("records_filtered_total{reason=state} grew by %v, want 2", got)
	}

	accepted := testutil.ToFloat64(receiptsAcceptedTotal)
	IncReceiptsAccepted()
	if got := testutil.ToFloat64(receiptsAcceptedTotal) - accepted; got != 1 {
		t.Errorf("receipts_accepted_total grew by %v, want 1", got)
	}

	unknown := testutil.ToFloat64(receiptsRejectedTotal.WithLabelValues("unknown"))
	IncReceiptsRejected("")
	if got := testutil.ToFloat64(receiptsRejectedTotal.WithLabelValues("unknown")) - unknown; got != 1 {
		t.Errorf("empty field not counted as unknown: %v", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	InitMetrics()
	ObserveRun(20 * time.Millisecond)

	path := filepath.Join(t.TempDir(), "receipts.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "pipeline_run_duration_seconds_count") {
		t.Errorf("histogram missing from textfile:\n%s", data)
	}
}
