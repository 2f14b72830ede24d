package cmd

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mailfold/resend-mcp/internal/config"
	"github.com/mailfold/resend-mcp/internal/logging"
	"github.com/mailfold/resend-mcp/internal/mail"
	"github.com/mailfold/resend-mcp/internal/resend"
)

func newSendCmd() *cobra.Command {
	var (
		debugMode   bool
		apiKey      string
		sender      string
		replyTo     string
		to          string
		subject     string
		content     string
		from        string
		scheduledAt string
		attachFiles []string
		attachURLs  []string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single email and exit",
		Long: `Send one email through the Resend API without starting a server.

Uses the same configuration as the serve command: the API key comes from
--api-key or RESEND_API_KEY, and the sender falls back to --sender or
SENDER_EMAIL_ADDRESS when --from is not given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(debugMode)

			cfg, err := config.Load(apiKey, sender, replyTo)
			if err != nil {
				return err
			}

			return runSend(cmd.Context(), cfg, sendOptions{
				To:          to,
				Subject:     subject,
				Content:     content,
				From:        from,
				ScheduledAt: scheduledAt,
				AttachFiles: attachFiles,
				AttachURLs:  attachURLs,
			})
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Resend API key. Can also use RESEND_API_KEY env var.")
	cmd.Flags().StringVar(&sender, "sender", "", "Default sender email address. Can also use SENDER_EMAIL_ADDRESS env var.")
	cmd.Flags().StringVar(&replyTo, "reply-to", "", "Reply-to email addresses, comma-separated. Can also use REPLY_TO_EMAIL_ADDRESSES env var.")
	cmd.Flags().StringVar(&to, "to", "", "Recipient email address")
	cmd.Flags().StringVar(&subject, "subject", "", "Email subject line")
	cmd.Flags().StringVar(&content, "content", "", "Plain text email content")
	cmd.Flags().StringVar(&from, "from", "", "Sender email address. Overrides the configured default sender.")
	cmd.Flags().StringVar(&scheduledAt, "scheduled-at", "", "Natural-language schedule expression (e.g. 'in 1 hour')")
	cmd.Flags().StringSliceVar(&attachFiles, "attach-file", nil, "Local file to attach; may be repeated")
	cmd.Flags().StringSliceVar(&attachURLs, "attach-url", nil, "Remote URL the provider fetches as an attachment; may be repeated")

	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("subject")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

type sendOptions struct {
	To          string
	Subject     string
	Content     string
	From        string
	ScheduledAt string
	AttachFiles []string
	AttachURLs  []string
}

func runSend(ctx context.Context, cfg *config.Config, opts sendOptions) error {
	from := opts.From
	if from == "" {
		from = cfg.Sender
	}
	if from == "" {
		return fmt.Errorf("no sender address: use --from, --sender, or set %s", config.EnvSender)
	}

	attachments := make([]mail.Attachment, 0, len(opts.AttachFiles)+len(opts.AttachURLs))
	for _, file := range opts.AttachFiles {
		attachments = append(attachments, mail.Attachment{
			Filename:  filepath.Base(file),
			LocalPath: file,
		})
	}
	for _, raw := range opts.AttachURLs {
		attachments = append(attachments, mail.Attachment{
			Filename:  filenameFromURL(raw),
			RemoteURL: raw,
		})
	}

	resolved, err := mail.ResolveAttachments(attachments)
	if err != nil {
		return err
	}

	client, err := resend.NewClient(cfg.APIKey)
	if err != nil {
		return err
	}

	email := &resend.SendEmailRequest{
		From:        from,
		To:          []string{opts.To},
		Subject:     opts.Subject,
		Text:        opts.Content,
		ReplyTo:     cfg.ReplyTo,
		ScheduledAt: opts.ScheduledAt,
	}
	for _, att := range resolved {
		email.Attachments = append(email.Attachments, resend.Attachment{
			Filename: att.Filename,
			Content:  att.Content,
			Path:     att.Path,
		})
	}

	response, err := client.SendEmail(ctx, email)
	if err != nil {
		return err
	}

	fmt.Printf("Email sent: %s\n", response.ID)
	return nil
}

// filenameFromURL derives an attachment filename from the URL path, falling
// back to "attachment" when the URL has no usable path segment.
func filenameFromURL(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		if name := path.Base(u.Path); name != "" && name != "." && name != "/" {
			return name
		}
	}
	return "attachment"
}
