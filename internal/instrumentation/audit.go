package instrumentation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// ToolInvocation captures all information about a tool invocation for audit
// logging.
//
// The Recipient field contains PII. When logging, the anonymized
// RecipientDomain() is used unless the audit logger is configured to include
// PII.
type ToolInvocation struct {
	// Tool name
	Tool string

	// Recipient is the destination email address of a send.
	Recipient string

	// Attachments is the number of attachments carried by the request.
	Attachments int

	// Scheduled indicates whether the request carried a schedule expression.
	Scheduled bool

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Success   bool
	Error     string

	// FailureKind classifies the failure (validation, missing_sender,
	// attachment_not_found, attachment_read, provider, unknown_tool).
	FailureKind string

	// Tracing context
	TraceID string
	SpanID  string
}

// RecipientDomain returns the domain portion of the recipient address for
// lower-cardinality logging.
func (ti *ToolInvocation) RecipientDomain() string {
	return ExtractAddressDomain(ti.Recipient)
}

// Status returns "success" or "error" based on the Success field.
func (ti *ToolInvocation) Status() string {
	if ti.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging with
// cardinality-controlled values (recipient domain instead of full address).
func (ti *ToolInvocation) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("recipient_domain", ti.RecipientDomain()),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if ti.Attachments > 0 {
		attrs = append(attrs, slog.Int("attachments", ti.Attachments))
	}
	if ti.Scheduled {
		attrs = append(attrs, slog.Bool("scheduled", true))
	}
	if ti.FailureKind != "" {
		attrs = append(attrs, slog.String("reason", ti.FailureKind))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// LogAuditAttrs returns slog attributes for full audit logging, including
// the full recipient address. Ensure audit logs are stored securely with
// appropriate access controls when this is used.
func (ti *ToolInvocation) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("tool", ti.Tool),
		slog.String("recipient", ti.Recipient),
		slog.Duration("duration", ti.Duration),
		slog.Bool("success", ti.Success),
	}

	if ti.Attachments > 0 {
		attrs = append(attrs, slog.Int("attachments", ti.Attachments))
	}
	if ti.Scheduled {
		attrs = append(attrs, slog.Bool("scheduled", true))
	}
	if ti.FailureKind != "" {
		attrs = append(attrs, slog.String("reason", ti.FailureKind))
	}
	if ti.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ti.TraceID))
	}
	if ti.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ti.SpanID))
	}
	if ti.Error != "" {
		attrs = append(attrs, slog.String("error", ti.Error))
	}

	return attrs
}

// NewToolInvocation creates a new ToolInvocation with timing started.
// Call Complete() when the tool operation finishes.
func NewToolInvocation(tool string) *ToolInvocation {
	return &ToolInvocation{
		Tool:      tool,
		StartTime: time.Now(),
	}
}

// WithRecipient sets the recipient address.
func (ti *ToolInvocation) WithRecipient(recipient string) *ToolInvocation {
	ti.Recipient = recipient
	return ti
}

// WithAttachments sets the attachment count.
func (ti *ToolInvocation) WithAttachments(n int) *ToolInvocation {
	ti.Attachments = n
	return ti
}

// WithScheduled marks the invocation as a scheduled send.
func (ti *ToolInvocation) WithScheduled(scheduled bool) *ToolInvocation {
	ti.Scheduled = scheduled
	return ti
}

// WithFailureKind sets the failure classification.
func (ti *ToolInvocation) WithFailureKind(kind string) *ToolInvocation {
	ti.FailureKind = kind
	return ti
}

// WithSpanContext extracts trace context from the current span.
func (ti *ToolInvocation) WithSpanContext(ctx context.Context) *ToolInvocation {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		ti.TraceID = span.SpanContext().TraceID().String()
		ti.SpanID = span.SpanContext().SpanID().String()
	}
	return ti
}

// Complete marks the invocation as completed and calculates duration.
// Returns the same ToolInvocation for method chaining.
func (ti *ToolInvocation) Complete(success bool, err error) *ToolInvocation {
	ti.Duration = time.Since(ti.StartTime)
	ti.Success = success
	if err != nil {
		ti.Error = err.Error()
	}
	return ti
}

// CompleteWithError marks the invocation as failed with the given error.
func (ti *ToolInvocation) CompleteWithError(err error) *ToolInvocation {
	return ti.Complete(false, err)
}

// CompleteSuccess marks the invocation as successful.
func (ti *ToolInvocation) CompleteSuccess() *ToolInvocation {
	return ti.Complete(true, nil)
}

// ExtractAddressDomain extracts the domain part from an email address.
// This reduces metric/log cardinality by using the domain instead of the
// full address. Returns "unknown" for malformed input.
func ExtractAddressDomain(email string) string {
	if email == "" {
		return "unknown"
	}

	parts := strings.Split(email, "@")
	if len(parts) == 2 && parts[1] != "" {
		return parts[1]
	}

	return "unknown"
}

// AuditLogger provides structured audit logging for tool invocations.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates a new AuditLogger with the given slog.Logger.
// By default, PII is not included in logs.
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: false,
		enabled:    true,
	}
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// LogToolInvocation logs a tool invocation using the standard log attributes.
// If the logger is configured with IncludePII, the full recipient address is
// logged; otherwise only the recipient domain is used.
func (al *AuditLogger) LogToolInvocation(ti *ToolInvocation) {
	if !al.enabled {
		return
	}

	var attrs []slog.Attr
	if al.includePII {
		attrs = ti.LogAuditAttrs()
	} else {
		attrs = ti.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ti.Success {
		al.logger.Info("tool_executed", args...)
	} else {
		al.logger.Warn("tool_failed", args...)
	}
}
