package resend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	client, err := NewClient("re_test_key")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, client.baseURL)

	_, err = NewClient("")
	assert.Error(t, err)
}

func TestSendEmail(t *testing.T) {
	var gotAuth string
	var gotPayload SendEmailRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/emails", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		gotAuth = r.Header.Get("Authorization")

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	client, err := NewClient("re_test_key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	resp, err := client.SendEmail(context.Background(), &SendEmailRequest{
		From:        "noreply@x.com",
		To:          []string{"a@x.com"},
		Subject:     "Hi",
		Text:        "Hello",
		ReplyTo:     []string{"support@x.com"},
		ScheduledAt: "in one hour",
		Attachments: []Attachment{
			{Filename: "a.txt", Content: "aGVsbG8="},
			{Filename: "b.pdf", Path: "https://x.com/b.pdf"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "email-123", resp.ID)

	assert.Equal(t, "Bearer re_test_key", gotAuth)
	assert.Equal(t, "noreply@x.com", gotPayload.From)
	assert.Equal(t, []string{"a@x.com"}, gotPayload.To)
	assert.Equal(t, "Hi", gotPayload.Subject)
	assert.Equal(t, "Hello", gotPayload.Text)
	assert.Equal(t, []string{"support@x.com"}, gotPayload.ReplyTo)
	assert.Equal(t, "in one hour", gotPayload.ScheduledAt)
	require.Len(t, gotPayload.Attachments, 2)
	assert.Equal(t, "aGVsbG8=", gotPayload.Attachments[0].Content)
	assert.Equal(t, "https://x.com/b.pdf", gotPayload.Attachments[1].Path)
}

func TestSendEmailProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"statusCode":403,"name":"validation_error","message":"API key is invalid"}`))
	}))
	defer srv.Close()

	client, err := NewClient("re_bad_key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.SendEmail(context.Background(), &SendEmailRequest{
		From: "noreply@x.com", To: []string{"a@x.com"}, Subject: "Hi", Text: "Hello",
	})
	require.Error(t, err)

	// The provider's structured payload is embedded verbatim
	assert.Contains(t, err.Error(), `"statusCode":403`)
	assert.Contains(t, err.Error(), `"name":"validation_error"`)
	assert.Contains(t, err.Error(), `"message":"API key is invalid"`)
}

func TestSendEmailUnparseableError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer srv.Close()

	client, err := NewClient("re_test_key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.SendEmail(context.Background(), &SendEmailRequest{
		From: "noreply@x.com", To: []string{"a@x.com"}, Subject: "Hi", Text: "Hello",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"statusCode":502`)
	assert.Contains(t, err.Error(), "upstream unavailable")
}

func TestSendEmailNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Close immediately so the call fails

	client, err := NewClient("re_test_key", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = client.SendEmail(context.Background(), &SendEmailRequest{
		From: "noreply@x.com", To: []string{"a@x.com"}, Subject: "Hi", Text: "Hello",
	})
	require.Error(t, err)

	var re *ResendError
	assert.ErrorAs(t, err, &re)
	assert.Equal(t, "send", re.Op)
}
