package resend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultBaseURL is the Resend API endpoint.
	DefaultBaseURL = "https://api.resend.com"

	// defaultTimeout bounds a single provider call.
	defaultTimeout = 30 * time.Second
)

// Client provides access to the Resend transactional email API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Resend API client authenticated with the given
// API key.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey cannot be empty")
	}

	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// SendEmail sends an email via the Resend API. It performs exactly one
// provider call; there is no retry. Provider-reported errors are returned
// with the provider's structured error payload embedded in the message.
func (c *Client) SendEmail(ctx context.Context, email *SendEmailRequest) (*SendEmailResponse, error) {
	payload, err := json.Marshal(email)
	if err != nil {
		return nil, &ResendError{
			Op:  "send",
			Err: fmt.Errorf("failed to marshal email payload: %w", err),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return nil, &ResendError{
			Op:  "send",
			Err: fmt.Errorf("failed to create request: %w", err),
		}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ResendError{
			Op:  "send",
			Err: fmt.Errorf("failed to send request: %w", err),
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ResendError{
			Op:  "send",
			Err: fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &ResendError{
			Op:  "send",
			Err: fmt.Errorf("API error: %s", serializeErrorPayload(resp.StatusCode, body)),
		}
	}

	var result SendEmailResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &ResendError{
			Op:  "send",
			Err: fmt.Errorf("failed to parse response: %w", err),
		}
	}

	return &result, nil
}

// serializeErrorPayload normalizes the provider's error body for embedding in
// an error message. Structured payloads are re-serialized so the caller sees
// the provider's own fields; anything unparseable is passed through raw.
func serializeErrorPayload(statusCode int, body []byte) string {
	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		if errResp.StatusCode == 0 {
			errResp.StatusCode = statusCode
		}
		if out, err := json.Marshal(errResp); err == nil {
			return string(out)
		}
	}
	return fmt.Sprintf(`{"statusCode":%d,"message":%q}`, statusCode, string(body))
}
