package common

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailfold/resend-mcp/internal/config"
	"github.com/mailfold/resend-mcp/internal/mail"
	"github.com/mailfold/resend-mcp/internal/server"
)

func newTestServerContext(t *testing.T) *server.ServerContext {
	t.Helper()

	sc, err := server.NewServerContext(context.Background(), &config.Config{APIKey: "re_test"})
	if err != nil {
		t.Fatalf("NewServerContext() error = %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestInstrumentedToolHandlerMapsErrorsInBand(t *testing.T) {
	sc := newTestServerContext(t)

	handler := InstrumentedToolHandler("send_email", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return nil, mail.NewError(mail.KindValidation, "Invalid arguments for send_email tool.")
		})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler returned protocol error = %v, want in-band result", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected in-band error result")
	}

	tc, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatal("expected text content")
	}
	want := "Error: Invalid arguments for send_email tool."
	if tc.Text != want {
		t.Errorf("text = %q, want %q", tc.Text, want)
	}
}

func TestInstrumentedToolHandlerPassesSuccessThrough(t *testing.T) {
	sc := newTestServerContext(t)

	handler := InstrumentedToolHandler("send_email", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("Email sent successfully: ok"), nil
		})

	result, err := handler(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler returned error = %v", err)
	}
	if result.IsError {
		t.Error("success result flagged as error")
	}
}

func TestRecipientFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "nil args",
			args:     nil,
			expected: "",
		},
		{
			name:     "to present",
			args:     map[string]interface{}{"to": "a@x.com"},
			expected: "a@x.com",
		},
		{
			name:     "to wrong type",
			args:     map[string]interface{}{"to": 42},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecipientFromArgs(tt.args); got != tt.expected {
				t.Errorf("RecipientFromArgs() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAttachmentCountFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected int
	}{
		{
			name:     "absent",
			args:     map[string]interface{}{},
			expected: 0,
		},
		{
			name: "two attachments",
			args: map[string]interface{}{
				"attachments": []interface{}{map[string]interface{}{}, map[string]interface{}{}},
			},
			expected: 2,
		},
		{
			name:     "wrong type",
			args:     map[string]interface{}{"attachments": "nope"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttachmentCountFromArgs(tt.args); got != tt.expected {
				t.Errorf("AttachmentCountFromArgs() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestIsScheduledFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected bool
	}{
		{
			name:     "absent",
			args:     map[string]interface{}{},
			expected: false,
		},
		{
			name:     "empty string",
			args:     map[string]interface{}{"scheduledAt": ""},
			expected: false,
		},
		{
			name:     "set",
			args:     map[string]interface{}{"scheduledAt": "in one hour"},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsScheduledFromArgs(tt.args); got != tt.expected {
				t.Errorf("IsScheduledFromArgs() = %v, want %v", got, tt.expected)
			}
		})
	}
}
