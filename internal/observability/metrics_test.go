package observability

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
)

func TestReportOutcome(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{name: "success", err: nil, want: OutcomeSuccess},
		{name: "provider", err: fmt.Errorf("window 2: %w", &domainMileage.ProviderError{Method: "POST"}), want: OutcomeProviderError},
		{name: "range", err: &domainMileage.InvalidRangeError{}, want: OutcomeInvalidRange},
		{name: "other", err: errors.New("boom"), want: OutcomeError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ReportOutcome(tc.err))
		})
	}
}

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveProviderCall(OperationGenerateReport, time.Now(), nil)
	m.ObserveProviderCall(OperationGenerateReport, time.Now(), errors.New("timeout"))
	m.IncUnmatched()
	m.IncUnmatched()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerRequests.WithLabelValues(OperationGenerateReport, OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.providerRequests.WithLabelValues(OperationGenerateReport, OutcomeProviderError)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.unmatchedProvider))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncUnmatched()
		m.ObserveReport(domainMileage.ModeWeekly, time.Now(), nil)
		m.ObserveProviderCall(OperationGetDevices, time.Now(), nil)
		m.ObserveHTTP("GET", "/health", 200, time.Millisecond)
	})
}

func TestObserveHTTP(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveHTTP("POST", "/api/v1/reports/mileage", 201, 20*time.Millisecond)
	m.ObserveHTTP("POST", "/api/v1/reports/mileage", 502, time.Second)
	m.ObserveHTTP("GET", "", 404, time.Millisecond)

	assert.Equal(t, 3, testutil.CollectAndCount(m.httpDuration))
}
