package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	reg := NewRegistry()
	require.NotNil(t, reg)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs, "runtime collectors are registered")
}

func TestRegistry_RecordRequest(t *testing.T) {
	reg := NewRegistry()

	reg.RecordRequest("GET", "/api/v1/trades", 200, 0.05)
	reg.RecordRequest("GET", "/api/v1/trades", 204, 0.01)
	reg.RecordRequest("GET", "/api/v1/trades", 404, 0.01)

	assert.Equal(t, 2.0, testutil.ToFloat64(reg.httpRequestsTotal.WithLabelValues("GET", "/api/v1/trades", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.httpRequestsTotal.WithLabelValues("GET", "/api/v1/trades", "4xx")))
}

func TestRegistry_RecordReport(t *testing.T) {
	reg := NewRegistry()

	reg.RecordReport(nil, 42, 0.002)
	reg.RecordReport(errors.New("boom"), 0, 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(reg.reportsTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(reg.reportsTotal.WithLabelValues("error")))
	assert.Equal(t, 42.0, testutil.ToFloat64(reg.tradesAnalyzed), "failed reports keep the last count")
	assert.Equal(t, 1, testutil.CollectAndCount(reg.reportDuration))
}

func TestRegistry_RecordImport(t *testing.T) {
	reg := NewRegistry()

	reg.RecordImport(3)
	reg.RecordImport(2)

	assert.Equal(t, 5.0, testutil.ToFloat64(reg.tradesImported))
}

func TestRegistry_Handler(t *testing.T) {
	reg := NewRegistry()
	reg.RecordImport(1)

	rec := httptest.NewRecorder()
	reg.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tradejournal_trades_imported_total 1"))
}

func TestStatusToString(t *testing.T) {
	tests := []struct {
		status   int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, statusToString(tt.status))
	}
}
