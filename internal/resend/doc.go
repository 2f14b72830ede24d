// Package resend implements a minimal client for the Resend transactional
// email HTTP API.
//
// The client covers the single send-email operation this server proxies.
// Authentication uses a bearer API key; scheduling expressions and remote
// attachment URLs are forwarded to the provider uninterpreted.
package resend
