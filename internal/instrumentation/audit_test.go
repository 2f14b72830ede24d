package instrumentation

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestExtractAddressDomain(t *testing.T) {
	tests := []struct {
		email    string
		expected string
	}{
		{"jane@example.com", "example.com"},
		{"user@gmail.com", "gmail.com"},
		{"", "unknown"},
		{"invalid", "unknown"},
		{"user@", "unknown"},
		{"a@b@c", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			if got := ExtractAddressDomain(tt.email); got != tt.expected {
				t.Errorf("ExtractAddressDomain(%q) = %q, want %q", tt.email, got, tt.expected)
			}
		})
	}
}

func TestToolInvocationComplete(t *testing.T) {
	ti := NewToolInvocation("send_email").
		WithRecipient("a@x.com").
		WithAttachments(2).
		WithScheduled(true)

	if ti.Tool != "send_email" {
		t.Errorf("Tool = %q, want send_email", ti.Tool)
	}
	if ti.StartTime.IsZero() {
		t.Error("StartTime should be set")
	}

	ti.CompleteSuccess()
	if !ti.Success {
		t.Error("CompleteSuccess should mark success")
	}
	if ti.Duration < 0 {
		t.Error("Duration should be non-negative")
	}
	if ti.Status() != StatusSuccess {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusSuccess)
	}
}

func TestToolInvocationCompleteWithError(t *testing.T) {
	ti := NewToolInvocation("send_email").
		WithFailureKind("provider").
		CompleteWithError(errors.New("boom"))

	if ti.Success {
		t.Error("CompleteWithError should mark failure")
	}
	if ti.Error != "boom" {
		t.Errorf("Error = %q, want boom", ti.Error)
	}
	if ti.Status() != StatusError {
		t.Errorf("Status() = %q, want %q", ti.Status(), StatusError)
	}
}

func TestLogAttrsUsesDomainOnly(t *testing.T) {
	ti := NewToolInvocation("send_email").
		WithRecipient("jane@example.com").
		WithAttachments(1)
	ti.Complete(true, nil)

	attrs := ti.LogAttrs()

	var sawDomain, sawFullAddress bool
	for _, attr := range attrs {
		if attr.Key == "recipient_domain" && attr.Value.String() == "example.com" {
			sawDomain = true
		}
		if strings.Contains(attr.Value.String(), "jane@example.com") {
			sawFullAddress = true
		}
	}

	if !sawDomain {
		t.Error("LogAttrs should include the recipient domain")
	}
	if sawFullAddress {
		t.Error("LogAttrs must not leak the full recipient address")
	}
}

func TestLogAuditAttrsIncludesRecipient(t *testing.T) {
	ti := NewToolInvocation("send_email").
		WithRecipient("jane@example.com")
	ti.Complete(true, nil)

	attrs := ti.LogAuditAttrs()

	var sawRecipient bool
	for _, attr := range attrs {
		if attr.Key == "recipient" && attr.Value.String() == "jane@example.com" {
			sawRecipient = true
		}
	}
	if !sawRecipient {
		t.Error("LogAuditAttrs should include the full recipient address")
	}
}

func TestAuditLoggerLogToolInvocation(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLogger(logger)

	ti := NewToolInvocation("send_email").WithRecipient("jane@example.com")
	ti.Duration = 5 * time.Millisecond
	ti.Success = true
	al.LogToolInvocation(ti)

	out := buf.String()
	if !strings.Contains(out, "tool_executed") {
		t.Errorf("log output missing tool_executed: %q", out)
	}
	if strings.Contains(out, "jane@example.com") {
		t.Errorf("log output leaks full recipient without PII opt-in: %q", out)
	}
	if !strings.Contains(out, "example.com") {
		t.Errorf("log output missing recipient domain: %q", out)
	}

	// Failed invocations log at warn level with the failure reason
	buf.Reset()
	ti2 := NewToolInvocation("send_email").WithFailureKind("validation")
	ti2.Success = false
	al.LogToolInvocation(ti2)

	out = buf.String()
	if !strings.Contains(out, "tool_failed") {
		t.Errorf("log output missing tool_failed: %q", out)
	}
	if !strings.Contains(out, "validation") {
		t.Errorf("log output missing failure reason: %q", out)
	}
}

func TestAuditLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: false})

	ti := NewToolInvocation("send_email")
	ti.Success = true
	al.LogToolInvocation(ti)

	if buf.Len() != 0 {
		t.Errorf("disabled audit logger should not write, got %q", buf.String())
	}
}

func TestAuditLoggerIncludePII(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	al := NewAuditLoggerWithConfig(logger, AuditLoggingConfig{Enabled: true, IncludePII: true})

	ti := NewToolInvocation("send_email").WithRecipient("jane@example.com")
	ti.Success = true
	al.LogToolInvocation(ti)

	if !strings.Contains(buf.String(), "jane@example.com") {
		t.Errorf("PII-enabled audit log should include the full recipient, got %q", buf.String())
	}
}
