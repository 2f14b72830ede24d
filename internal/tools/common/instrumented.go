package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mailfold/resend-mcp/internal/instrumentation"
	"github.com/mailfold/resend-mcp/internal/mail"
	"github.com/mailfold/resend-mcp/internal/server"
)

// ToolHandlerFunc is the handler signature expected by the MCP server.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// InstrumentedToolHandler wraps a tool handler with error mapping, metrics,
// and audit logging.
//
// The inner handler returns domain errors directly. The wrapper is the single
// boundary that converts every failure into an in-band tool result with
// IsError set and a text content of the form "Error: <message>"; protocol
// errors are never surfaced to the client for expected failures.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(
	toolName string,
	sc *server.ServerContext,
	handler ToolHandlerFunc,
) ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		metrics := sc.Metrics()
		auditLogger := sc.AuditLogger()

		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)

		args := request.GetArguments()
		if recipient := RecipientFromArgs(args); recipient != "" {
			invocation.WithRecipient(recipient)
		}
		if n := AttachmentCountFromArgs(args); n > 0 {
			invocation.WithAttachments(n)
		}
		invocation.WithScheduled(IsScheduledFromArgs(args))

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		reason := ""

		if err != nil {
			// Expected failures stay in-band. The error text becomes the
			// tool result, prefixed so clients can distinguish failures
			// without parsing structured content.
			status = instrumentation.StatusError
			reason = string(mail.KindOf(err))
			invocation.WithFailureKind(reason).CompleteWithError(err)
			result = mcp.NewToolResultError("Error: " + err.Error())
		} else if result != nil && result.IsError {
			status = instrumentation.StatusError
			invocation.Complete(false, nil)
		} else {
			invocation.CompleteSuccess()
		}

		if metrics != nil {
			metrics.RecordToolInvocation(ctx, toolName, status, reason, duration)
		}

		if auditLogger != nil {
			auditLogger.LogToolInvocation(invocation)
		}

		return result, nil
	}
}

// RecipientFromArgs extracts the destination address from raw tool arguments.
// Returns empty string when absent or not a string.
func RecipientFromArgs(args map[string]interface{}) string {
	if to, ok := args["to"].(string); ok {
		return to
	}
	return ""
}

// AttachmentCountFromArgs returns the number of attachments in the raw tool
// arguments, or zero when the field is absent or malformed.
func AttachmentCountFromArgs(args map[string]interface{}) int {
	if attachments, ok := args["attachments"].([]interface{}); ok {
		return len(attachments)
	}
	return 0
}

// IsScheduledFromArgs reports whether the raw tool arguments carry a
// non-empty schedule expression.
func IsScheduledFromArgs(args map[string]interface{}) bool {
	scheduledAt, ok := args["scheduledAt"].(string)
	return ok && scheduledAt != ""
}
