package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordImport(t *testing.T) {
	before := testutil.ToFloat64(importRequests.WithLabelValues("partial"))
	validBefore := testutil.ToFloat64(importRows.WithLabelValues("valid"))
	invalidBefore := testutil.ToFloat64(importRows.WithLabelValues("invalid"))

	RecordImport("partial", 7, 2, 150*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(importRequests.WithLabelValues("partial")))
	assert.Equal(t, validBefore+7, testutil.ToFloat64(importRows.WithLabelValues("valid")))
	assert.Equal(t, invalidBefore+2, testutil.ToFloat64(importRows.WithLabelValues("invalid")))
}

func TestRecordImport_EmptyOutcome(t *testing.T) {
	before := testutil.ToFloat64(importRequests.WithLabelValues("unknown"))

	RecordImport("", 0, 0, time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(importRequests.WithLabelValues("unknown")))
}

func TestRecordFailure(t *testing.T) {
	before := testutil.ToFloat64(importRequests.WithLabelValues(OutcomeFailed))

	RecordFailure(time.Second)

	assert.Equal(t, before+1, testutil.ToFloat64(importRequests.WithLabelValues(OutcomeFailed)))
}

func TestOutcomeLabels(t *testing.T) {
	tests := []struct {
		record func()
		label  string
	}{
		{func() { RecordImport(OutcomeSuccess, 3, 0, time.Millisecond) }, "success"},
		{func() { RecordImport(OutcomePartial, 2, 1, time.Millisecond) }, "partial"},
		{func() { RecordImport(OutcomeRejected, 0, 4, time.Millisecond) }, "rejected"},
		{func() { RecordFailure(time.Millisecond) }, "failed"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			before := testutil.ToFloat64(importRequests.WithLabelValues(tt.label))

			tt.record()

			assert.Equal(t, before+1, testutil.ToFloat64(importRequests.WithLabelValues(tt.label)))
		})
	}
}

func TestHandler_ExposesImportMetrics(t *testing.T) {
	RecordImport("success", 1, 0, time.Millisecond)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "menuboard_import_requests_total"))
	assert.True(t, strings.Contains(body, "menuboard_import_duration_seconds"))
}
