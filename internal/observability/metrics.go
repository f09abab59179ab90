package observability

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	domainMileage "fleet-mileage-monitor/internal/domain/mileage"
)

const (
	OperationGenerateReport = "generate_report"
	OperationGetDevices     = "get_devices"

	OutcomeSuccess       = "success"
	OutcomeProviderError = "provider_error"
	OutcomeInvalidRange  = "invalid_range"
	OutcomeError         = "error"
)

// Metrics holds the mileage pipeline collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	providerRequests  *prometheus.CounterVec
	providerDuration  *prometheus.HistogramVec
	reportDuration    *prometheus.HistogramVec
	unmatchedProvider prometheus.Counter
	httpDuration      *prometheus.HistogramVec
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the process-wide metrics registered on the default registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleet_provider_requests_total",
			Help: "Calls to the tracking provider by operation and outcome.",
		}, []string{"operation", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleet_provider_request_duration_seconds",
			Help:    "Tracking provider call latency.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30, 60},
		}, []string{"operation"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleet_report_generation_duration_seconds",
			Help:    "Mileage report generation latency by mode and outcome.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60, 120, 300},
		}, []string{"mode", "outcome"}),
		unmatchedProvider: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fleet_unmatched_provider_items_total",
			Help: "Provider report items that matched no requested device.",
		}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleet_http_request_duration_seconds",
			Help:    "API request latency by route and status class.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	registerer.MustRegister(m.providerRequests, m.providerDuration, m.reportDuration, m.unmatchedProvider, m.httpDuration)
	return m
}

func (m *Metrics) ObserveProviderCall(operation string, started time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeProviderError
	}
	m.providerRequests.WithLabelValues(operation, outcome).Inc()
	m.providerDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) ObserveReport(mode domainMileage.ReportMode, started time.Time, err error) {
	if m == nil {
		return
	}
	m.reportDuration.WithLabelValues(string(mode), ReportOutcome(err)).Observe(time.Since(started).Seconds())
}

func (m *Metrics) IncUnmatched() {
	if m == nil {
		return
	}
	m.unmatchedProvider.Inc()
}

// ObserveHTTP records a served request. route is the matched pattern, not
// the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpDuration.WithLabelValues(method, route, strconv.Itoa(status/100)+"xx").Observe(elapsed.Seconds())
}

// ReportOutcome maps a report error to a low-cardinality label.
func ReportOutcome(err error) string {
	var providerErr *domainMileage.ProviderError
	var rangeErr *domainMileage.InvalidRangeError
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.As(err, &providerErr):
		return OutcomeProviderError
	case errors.As(err, &rangeErr):
		return OutcomeInvalidRange
	default:
		return OutcomeError
	}
}
