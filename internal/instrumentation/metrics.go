package instrumentation

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys.
const (
	attrMethod = "method"
	attrPath   = "path"
	attrStatus = "status"
	attrReason = "reason"
	attrSource = "source"
	attrTool   = "tool"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// HTTP metrics (streamable-http transport)
	httpRequestsTotal   metric.Int64Counter
	httpRequestDuration metric.Float64Histogram

	// Provider metrics
	emailSendTotal    metric.Int64Counter
	emailSendDuration metric.Float64Histogram

	// Attachment metrics
	attachmentsResolvedTotal metric.Int64Counter

	// MCP Tool metrics
	toolInvocationsTotal metric.Int64Counter
	toolDuration         metric.Float64Histogram
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.httpRequestsTotal, err = meter.Int64Counter(
		"http_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_requests_total counter: %w", err)
	}

	m.httpRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.001, 0.01, 0.1, 0.5, 1.0, 2.5, 5.0, 10.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http_request_duration_seconds histogram: %w", err)
	}

	m.emailSendTotal, err = meter.Int64Counter(
		"email_send_total",
		metric.WithDescription("Total number of provider send operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create email_send_total counter: %w", err)
	}

	m.emailSendDuration, err = meter.Float64Histogram(
		"email_send_duration_seconds",
		metric.WithDescription("Provider send operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create email_send_duration_seconds histogram: %w", err)
	}

	m.attachmentsResolvedTotal, err = meter.Int64Counter(
		"attachments_resolved_total",
		metric.WithDescription("Total number of resolved attachments by source"),
		metric.WithUnit("{attachment}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create attachments_resolved_total counter: %w", err)
	}

	m.toolInvocationsTotal, err = meter.Int64Counter(
		"mcp_tool_invocations_total",
		metric.WithDescription("Total number of MCP tool invocations"),
		metric.WithUnit("{invocation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_invocations_total counter: %w", err)
	}

	m.toolDuration, err = meter.Float64Histogram(
		"mcp_tool_duration_seconds",
		metric.WithDescription("MCP tool execution duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mcp_tool_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request with method, path, status code, and duration.
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, path string, statusCode int, duration time.Duration) {
	if m.httpRequestsTotal == nil || m.httpRequestDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrMethod, method),
		attribute.String(attrPath, path),
		attribute.String(attrStatus, strconv.Itoa(statusCode)),
	}

	m.httpRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.httpRequestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordEmailSend records a provider send operation with status and duration.
// Status should be "success" or "error".
func (m *Metrics) RecordEmailSend(ctx context.Context, status string, duration time.Duration) {
	if m.emailSendTotal == nil || m.emailSendDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}

	m.emailSendTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.emailSendDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordAttachmentResolved records a resolved attachment.
// Source should be "local" or "remote".
func (m *Metrics) RecordAttachmentResolved(ctx context.Context, source string) {
	if m.attachmentsResolvedTotal == nil {
		return // Instrumentation not initialized
	}

	m.attachmentsResolvedTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrSource, source),
	))
}

// RecordToolInvocation records an MCP tool invocation with tool name, status,
// failure reason, and duration. Reason is empty on success and carries the
// pipeline failure kind on error.
func (m *Metrics) RecordToolInvocation(ctx context.Context, toolName, status, reason string, duration time.Duration) {
	if m.toolInvocationsTotal == nil || m.toolDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrTool, toolName),
		attribute.String(attrStatus, status),
	}
	if reason != "" {
		attrs = append(attrs, attribute.String(attrReason, reason))
	}

	m.toolInvocationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.toolDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}
