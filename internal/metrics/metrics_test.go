package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSnapshot(t *testing.T) {
	before := testutil.ToFloat64(SnapshotCount.WithLabelValues("applied"))
	normalized := testutil.ToFloat64(RecordsNormalized)

	RecordSnapshot("applied", 3)
	RecordSnapshot("applied", 0)

	assert.Equal(t, before+2, testutil.ToFloat64(SnapshotCount.WithLabelValues("applied")))
	assert.Equal(t, normalized+3, testutil.ToFloat64(RecordsNormalized))
}

func TestIncrementProjectWrite(t *testing.T) {
	before := testutil.ToFloat64(ProjectWrites.WithLabelValues("progress"))
	IncrementProjectWrite("progress")
	assert.Equal(t, before+1, testutil.ToFloat64(ProjectWrites.WithLabelValues("progress")))
}

func TestHistogramsAcceptObservations(t *testing.T) {
	RecordUseCase("status", true, 2*time.Millisecond)
	RecordHTTPRequestDuration("GET", "/health", "200", time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(UseCaseDuration, "canteiro_use_case_duration_seconds"))
}
