package resend

import "fmt"

// SendEmailRequest is the wire payload for the Resend send-email endpoint.
type SendEmailRequest struct {
	// From is the sender address (e.g. "Acme <noreply@acme.dev>").
	From string `json:"from"`

	// To is the list of recipient addresses.
	To []string `json:"to"`

	// Subject is the email subject line.
	Subject string `json:"subject"`

	// Text is the plain-text body.
	Text string `json:"text"`

	// ReplyTo is the list of reply-to addresses.
	ReplyTo []string `json:"reply_to,omitempty"`

	// ScheduledAt is a natural-language schedule expression, interpreted by
	// the provider (e.g. "in one hour").
	ScheduledAt string `json:"scheduled_at,omitempty"`

	// Attachments are inline (base64 content) or provider-fetched (path)
	// attachments.
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment is the wire form of a single attachment. Exactly one of Content
// and Path is set.
type Attachment struct {
	// Filename is the name the attachment is delivered under.
	Filename string `json:"filename"`

	// Content is the base64-encoded file content.
	Content string `json:"content,omitempty"`

	// Path is a URL the provider downloads the attachment from.
	Path string `json:"path,omitempty"`
}

// SendEmailResponse is the provider's response to a successful send.
type SendEmailResponse struct {
	// ID is the provider-assigned email identifier.
	ID string `json:"id"`
}

// ErrorResponse is the structured error payload the provider returns on
// failed requests.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Name       string `json:"name"`
	Message    string `json:"message"`
}

// ResendError represents an error that occurred while talking to the Resend
// API.
type ResendError struct {
	// Op is the operation that failed (e.g. "send").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ResendError) Error() string {
	return fmt.Sprintf("resend %s: %v", e.Op, e.Err)
}

// Unwrap implements the errors.Unwrap interface.
func (e *ResendError) Unwrap() error {
	return e.Err
}
