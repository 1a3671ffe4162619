package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecord_UpdatesCollectors(t *testing.T) {
	Record(12.5, 87.0, 3, 1)

	if got := testutil.ToFloat64(objectiveValue); got != 87.0 {
		t.Errorf("objectiveValue = %v, want 87.0", got)
	}
	if got := testutil.ToFloat64(violationCount); got != 3 {
		t.Errorf("violationCount = %v, want 3", got)
	}
	if got := testutil.ToFloat64(deficitCount); got != 1 {
		t.Errorf("deficitCount = %v, want 1", got)
	}
}

func TestSummary_DoesNotPanic(t *testing.T) {
	Summary(12.5, 87.0, 3, 1)
}
