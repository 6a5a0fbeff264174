package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordDBQuery(t *testing.T) {
	errCounter := DefaultMetrics.DBQueryErrors.WithLabelValues("postgres", "users.get_all")
	before := testutil.ToFloat64(errCounter)

	RecordDBQuery("postgres", "users.get_all", 0.05, nil)
	if got := testutil.ToFloat64(errCounter); got != before {
		t.Errorf("Successful query must not count as error: %v -> %v", before, got)
	}

	RecordDBQuery("postgres", "users.get_all", 0.05, errors.New("connection reset"))
	if got := testutil.ToFloat64(errCounter); got != before+1 {
		t.Errorf("Failed query should increment error counter: %v -> %v", before, got)
	}

	if testutil.CollectAndCount(DefaultMetrics.DBQueryDuration) == 0 {
		t.Error("Query duration should be observed for every recorded query")
	}
}

func TestRecordBuildRun(t *testing.T) {
	counter := DefaultMetrics.BuildRunsTotal.WithLabelValues("historical", "success")
	before := testutil.ToFloat64(counter)

	RecordBuildRun("historical", "success", 1.5)
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Errorf("Build run should increment run counter: %v -> %v", before, got)
	}
}
