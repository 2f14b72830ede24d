package config

import (
	"fmt"
	"os"
	"strings"
)

// Environment variable names for server configuration.
const (
	EnvAPIKey  = "RESEND_API_KEY"
	EnvSender  = "SENDER_EMAIL_ADDRESS"
	EnvReplyTo = "REPLY_TO_EMAIL_ADDRESSES"
)

// Config holds the process-wide configuration for the email tool.
// It is loaded once at startup and never mutated afterwards.
type Config struct {
	// APIKey is the Resend API key used to authenticate provider calls.
	APIKey string

	// Sender is the default "from" address used when a tool call does not
	// provide one. It may be empty, in which case every call must carry an
	// explicit from address or it fails at call time.
	Sender string

	// ReplyTo is the default list of reply-to addresses. May be empty.
	ReplyTo []string
}

// Load builds a Config from explicit values with environment fallbacks.
// Flag values take precedence; environment variables only apply when the
// corresponding value is empty.
func Load(apiKey, sender, replyTo string) (*Config, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key configured: set %s or use --api-key", EnvAPIKey)
	}

	if sender == "" {
		sender = os.Getenv(EnvSender)
	}

	if replyTo == "" {
		replyTo = os.Getenv(EnvReplyTo)
	}

	return &Config{
		APIKey:  apiKey,
		Sender:  sender,
		ReplyTo: ParseAddressList(replyTo),
	}, nil
}

// ParseAddressList parses a comma-separated list of email addresses,
// trimming whitespace from each entry and filtering out empty strings.
// Returns nil if the input is empty or contains only whitespace/commas.
func ParseAddressList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
