package config

import (
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		apiKey      string
		sender      string
		replyTo     string
		env         map[string]string
		wantErr     string
		wantAPIKey  string
		wantSender  string
		wantReplyTo []string
	}{
		{
			name:       "flags only",
			apiKey:     "re_flag",
			sender:     "noreply@example.com",
			wantAPIKey: "re_flag",
			wantSender: "noreply@example.com",
		},
		{
			name:       "env fallback for api key",
			env:        map[string]string{EnvAPIKey: "re_env"},
			wantAPIKey: "re_env",
		},
		{
			name:       "flag takes precedence over env",
			apiKey:     "re_flag",
			env:        map[string]string{EnvAPIKey: "re_env"},
			wantAPIKey: "re_flag",
		},
		{
			name:    "missing api key fails",
			wantErr: "no API key configured",
		},
		{
			name:       "sender optional",
			apiKey:     "re_key",
			wantAPIKey: "re_key",
			wantSender: "",
		},
		{
			name:       "sender env fallback",
			apiKey:     "re_key",
			env:        map[string]string{EnvSender: "default@example.com"},
			wantAPIKey: "re_key",
			wantSender: "default@example.com",
		},
		{
			name:        "reply-to parsed from flag",
			apiKey:      "re_key",
			replyTo:     "a@x.com, b@x.com",
			wantAPIKey:  "re_key",
			wantReplyTo: []string{"a@x.com", "b@x.com"},
		},
		{
			name:        "reply-to env fallback",
			apiKey:      "re_key",
			env:         map[string]string{EnvReplyTo: "c@x.com"},
			wantAPIKey:  "re_key",
			wantReplyTo: []string{"c@x.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Isolate from any ambient configuration
			t.Setenv(EnvAPIKey, "")
			t.Setenv(EnvSender, "")
			t.Setenv(EnvReplyTo, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load(tt.apiKey, tt.sender, tt.replyTo)

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Load() expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Load() error = %v, want error containing %q", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error = %v", err)
			}
			if cfg.APIKey != tt.wantAPIKey {
				t.Errorf("APIKey = %q, want %q", cfg.APIKey, tt.wantAPIKey)
			}
			if cfg.Sender != tt.wantSender {
				t.Errorf("Sender = %q, want %q", cfg.Sender, tt.wantSender)
			}
			if len(cfg.ReplyTo) != len(tt.wantReplyTo) {
				t.Fatalf("ReplyTo = %v, want %v", cfg.ReplyTo, tt.wantReplyTo)
			}
			for i := range tt.wantReplyTo {
				if cfg.ReplyTo[i] != tt.wantReplyTo[i] {
					t.Errorf("ReplyTo[%d] = %q, want %q", i, cfg.ReplyTo[i], tt.wantReplyTo[i])
				}
			}
		})
	}
}

func TestParseAddressList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string returns nil",
			input:    "",
			expected: nil,
		},
		{
			name:     "single address",
			input:    "a@x.com",
			expected: []string{"a@x.com"},
		},
		{
			name:     "multiple addresses",
			input:    "a@x.com,b@x.com,c@x.com",
			expected: []string{"a@x.com", "b@x.com", "c@x.com"},
		},
		{
			name:     "addresses with whitespace",
			input:    " a@x.com , b@x.com ",
			expected: []string{"a@x.com", "b@x.com"},
		},
		{
			name:     "empty entries filtered",
			input:    "a@x.com,,b@x.com,",
			expected: []string{"a@x.com", "b@x.com"},
		},
		{
			name:     "only commas returns nil",
			input:    ",,,",
			expected: nil,
		},
		{
			name:     "only whitespace returns nil",
			input:    "  ,  ,  ",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAddressList(tt.input)
			if len(result) != len(tt.expected) {
				t.Fatalf("ParseAddressList(%q) = %v, want %v", tt.input, result, tt.expected)
			}
			for i := range tt.expected {
				if result[i] != tt.expected[i] {
					t.Errorf("ParseAddressList(%q)[%d] = %q, want %q", tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}
