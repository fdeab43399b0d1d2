package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	RegistrationsTotal metric.Int64Counter
	EnrollmentsTotal   metric.Int64Counter
	PrescriptionsTotal metric.Int64Counter
	MetricsRecorded    metric.Int64Counter
	EncountersTotal    metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/AfyaLink-Health/health-records-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	registrationsTotal, err := meter.Int64Counter(
		"user_registrations_total",
		metric.WithDescription("Total number of staff registrations"),
		metric.WithUnit("{registration}"),
	)
	if err != nil {
		return nil, err
	}

	enrollmentsTotal, err := meter.Int64Counter(
		"enrollments_total",
		metric.WithDescription("Total number of enrollment operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	prescriptionsTotal, err := meter.Int64Counter(
		"prescriptions_total",
		metric.WithDescription("Total number of prescription operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	metricsRecorded, err := meter.Int64Counter(
		"health_metrics_recorded_total",
		metric.WithDescription("Total number of health metrics recorded"),
		metric.WithUnit("{metric}"),
	)
	if err != nil {
		return nil, err
	}

	encountersTotal, err := meter.Int64Counter(
		"encounters_total",
		metric.WithDescription("Total number of encounter operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	permissionCheckDuration, err := meter.Float64Histogram(
		"permission_check_duration_ms",
		metric.WithDescription("Permission check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPDurationMs:          httpDurationMs,
		RegistrationsTotal:      registrationsTotal,
		EnrollmentsTotal:        enrollmentsTotal,
		PrescriptionsTotal:      prescriptionsTotal,
		MetricsRecorded:         metricsRecorded,
		EncountersTotal:         encountersTotal,
		AuthFailuresTotal:       authFailuresTotal,
		PermissionCheckDuration: permissionCheckDuration,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordRegistration records a staff registration metric
func (m *Metrics) RecordRegistration(ctx context.Context, role string) {
	m.RegistrationsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("role", role),
	))
}

// RecordEnrollmentOperation records an enrollment operation metric
func (m *Metrics) RecordEnrollmentOperation(ctx context.Context, operation string) {
	m.EnrollmentsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordPrescriptionOperation records a prescription operation metric
func (m *Metrics) RecordPrescriptionOperation(ctx context.Context, operation string) {
	m.PrescriptionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordMetricRecorded records a health metric write
func (m *Metrics) RecordMetricRecorded(ctx context.Context, name string) {
	m.MetricsRecorded.Add(ctx, 1, metric.WithAttributes(
		attribute.String("metric_name", name),
	))
}

// RecordEncounterOperation records an encounter operation metric
func (m *Metrics) RecordEncounterOperation(ctx context.Context, operation string) {
	m.EncountersTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

// RecordPermissionCheck records a permission check duration metric
func (m *Metrics) RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool) {
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("permission", permission),
		attribute.Bool("allowed", allowed),
	))
}
