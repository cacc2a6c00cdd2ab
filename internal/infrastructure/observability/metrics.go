package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics. A nil *Metrics records nothing.
type Metrics struct {
	RequestCount        metric.Int64Counter
	RequestDuration     metric.Float64Histogram
	DiagnosisCount      metric.Int64Counter
	BookingCount        metric.Int64Counter
	AuthFailureCount    metric.Int64Counter
	GuardViolationCount metric.Int64Counter
}

// InitMetrics initializes application metrics against the global meter provider
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter(instrumentationName)

	requestCount, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Number of HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	diagnosisCount, err := meter.Int64Counter(
		"medisense.diagnosis.count",
		metric.WithDescription("Number of diagnoses computed, by condition"),
	)
	if err != nil {
		return nil, err
	}

	bookingCount, err := meter.Int64Counter(
		"medisense.booking.count",
		metric.WithDescription("Number of bookings appended to the ledger"),
	)
	if err != nil {
		return nil, err
	}

	authFailureCount, err := meter.Int64Counter(
		"medisense.auth.failure.count",
		metric.WithDescription("Number of rejected admin logins"),
	)
	if err != nil {
		return nil, err
	}

	guardViolationCount, err := meter.Int64Counter(
		"medisense.workflow.guard_violation.count",
		metric.WithDescription("Number of refused workflow transitions"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCount:        requestCount,
		RequestDuration:     requestDuration,
		DiagnosisCount:      diagnosisCount,
		BookingCount:        bookingCount,
		AuthFailureCount:    authFailureCount,
		GuardViolationCount: guardViolationCount,
	}, nil
}

// RecordRequestMetric records an HTTP request
func RecordRequestMetric(ctx context.Context, metrics *Metrics, method, path string, statusCode int, duration time.Duration) {
	if metrics == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.route", path),
		attribute.Int("http.status_code", statusCode),
	}

	metrics.RequestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	metrics.RequestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordDiagnosis counts a computed diagnosis
func (m *Metrics) RecordDiagnosis(ctx context.Context, condition string) {
	if m == nil {
		return
	}
	m.DiagnosisCount.Add(ctx, 1, metric.WithAttributes(attribute.String("condition", condition)))
}

// RecordBooking counts a ledger append
func (m *Metrics) RecordBooking(ctx context.Context, provider string) {
	if m == nil {
		return
	}
	m.BookingCount.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}

// RecordAuthFailure counts a rejected admin login
func (m *Metrics) RecordAuthFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.AuthFailureCount.Add(ctx, 1)
}

// RecordGuardViolation counts a refused transition
func (m *Metrics) RecordGuardViolation(ctx context.Context, state, event string) {
	if m == nil {
		return
	}
	m.GuardViolationCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("workflow.state", state),
		attribute.String("workflow.event", event),
	))
}
