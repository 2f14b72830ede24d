package email_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/attribute"

	"github.com/mailfold/resend-mcp/internal/instrumentation"
	"github.com/mailfold/resend-mcp/internal/logging"
	"github.com/mailfold/resend-mcp/internal/mail"
	"github.com/mailfold/resend-mcp/internal/resend"
	"github.com/mailfold/resend-mcp/internal/server"
	"github.com/mailfold/resend-mcp/internal/tools/common"
)

// SendEmailToolName is the single tool this server exposes.
const SendEmailToolName = "send_email"

// RegisterEmailTools registers the send_email tool with the MCP server.
func RegisterEmailTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	tool := mcp.NewTool(SendEmailToolName,
		mcp.WithDescription("Send an email using Resend. The recipient, subject and plain-text content are required. Optionally schedule the send or attach files from the local filesystem or remote URLs."),
		mcp.WithString("to",
			mcp.Required(),
			mcp.Description("Recipient email address"),
		),
		mcp.WithString("subject",
			mcp.Required(),
			mcp.Description("Email subject line"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Plain text email content"),
		),
		mcp.WithString("from",
			mcp.Description("Sender email address. Overrides the configured default sender. Required if no default sender is configured."),
		),
		mcp.WithArray("replyTo",
			mcp.Description("Reply-to email addresses. Overrides the configured default reply-to list."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("scheduledAt",
			mcp.Description("Optional natural-language schedule expression for delayed sending (e.g. 'in 1 hour', 'tomorrow at 9am'). Passed to the provider as-is."),
		),
		mcp.WithArray("attachments",
			mcp.Description("Optional email attachments. Each entry names the delivered filename and exactly one source: a local file path or a remote URL."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"filename": map[string]any{
						"type":        "string",
						"description": "Filename the attachment is delivered under",
					},
					"localPath": map[string]any{
						"type":        "string",
						"description": "Absolute path to a file on the local filesystem",
					},
					"remoteUrl": map[string]any{
						"type":        "string",
						"description": "URL the provider fetches the attachment content from",
					},
				},
				"required": []string{"filename"},
			}),
		),
	)

	s.AddTool(tool, mcpserver.ToolHandlerFunc(common.InstrumentedToolHandler(SendEmailToolName, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleSendEmail(ctx, request, sc)
		})))

	return nil
}

// handleSendEmail runs the send pipeline: argument validation, sender
// resolution, attachment resolution, one provider call. All failures are
// returned as classified domain errors; the instrumented wrapper converts
// them into in-band error results.
func handleSendEmail(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	// The server only registers send_email, but a host can still name any
	// tool in a call request. Unknown names answer in-band rather than
	// terminating the connection.
	if request.Params.Name != SendEmailToolName {
		return nil, mail.NewError(mail.KindUnknownTool, "Unknown tool: %s", request.Params.Name)
	}

	req, err := mail.ParseSendEmailArgs(request.GetArguments())
	if err != nil {
		return nil, err
	}

	ctx, span := instrumentation.StartToolSpan(ctx, SendEmailToolName,
		attribute.Int(instrumentation.SpanAttrAttachments, len(req.Attachments)),
		attribute.Bool(instrumentation.SpanAttrScheduled, req.ScheduledAt != ""),
	)
	defer span.End()

	cfg := sc.Config()

	from := req.From
	if from == "" {
		from = cfg.Sender
	}
	if from == "" {
		err := mail.NewError(mail.KindMissingSender,
			"Sender email address is required. Provide the 'from' argument or configure a default sender.")
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	replyTo := req.ReplyTo
	if len(replyTo) == 0 {
		replyTo = cfg.ReplyTo
	}

	resolved, err := mail.ResolveAttachments(req.Attachments)
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}
	recordResolvedAttachments(ctx, sc, resolved)

	logger := logging.WithTool(slog.Default(), SendEmailToolName)
	logger.Info("sending email",
		logging.Domain(req.To),
		"attachments", len(resolved),
		"scheduled", req.ScheduledAt != "",
	)

	response, err := sendViaProvider(ctx, sc, buildProviderRequest(req, from, replyTo, resolved))
	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, mail.NewError(mail.KindProvider, "Failed to send email: %v", err)
	}

	instrumentation.SetSpanSuccess(span)
	return mcp.NewToolResultText(formatSuccess(response)), nil
}

// buildProviderRequest converts the validated request into the provider wire
// shape. The schedule expression passes through verbatim; the provider owns
// its interpretation.
func buildProviderRequest(req *mail.SendEmailRequest, from string, replyTo []string, resolved []mail.ResolvedAttachment) *resend.SendEmailRequest {
	out := &resend.SendEmailRequest{
		From:        from,
		To:          []string{req.To},
		Subject:     req.Subject,
		Text:        req.Content,
		ReplyTo:     replyTo,
		ScheduledAt: req.ScheduledAt,
	}

	for _, att := range resolved {
		out.Attachments = append(out.Attachments, resend.Attachment{
			Filename: att.Filename,
			Content:  att.Content,
			Path:     att.Path,
		})
	}

	return out
}

// sendViaProvider performs the single provider call under a client span and
// records send metrics.
func sendViaProvider(ctx context.Context, sc *server.ServerContext, email *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	ctx, span := instrumentation.StartProviderSpan(ctx, "send")
	defer span.End()

	start := time.Now()
	response, err := sc.ResendClient().SendEmail(ctx, email)
	duration := time.Since(start)

	if metrics := sc.Metrics(); metrics != nil {
		status := instrumentation.StatusSuccess
		if err != nil {
			status = instrumentation.StatusError
		}
		metrics.RecordEmailSend(ctx, status, duration)
	}

	if err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	instrumentation.SetSpanSuccess(span)
	return response, nil
}

// recordResolvedAttachments records one metric sample per resolved attachment,
// labeled by source.
func recordResolvedAttachments(ctx context.Context, sc *server.ServerContext, resolved []mail.ResolvedAttachment) {
	metrics := sc.Metrics()
	if metrics == nil {
		return
	}

	for _, att := range resolved {
		source := instrumentation.SourceLocal
		if att.Path != "" {
			source = instrumentation.SourceRemote
		}
		metrics.RecordAttachmentResolved(ctx, source)
	}
}

// formatSuccess embeds the provider's returned data in a human-readable
// confirmation string.
func formatSuccess(response *resend.SendEmailResponse) string {
	data, err := json.Marshal(response)
	if err != nil {
		return fmt.Sprintf("Email sent successfully: %s", response.ID)
	}
	return fmt.Sprintf("Email sent successfully: %s", string(data))
}
