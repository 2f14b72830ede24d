// Package mail implements the request model for the send_email tool:
// narrowing untyped tool arguments into a typed request, resolving attachment
// sources, and classifying pipeline failures.
//
// Attachments declare exactly one source: a local filesystem path (read in
// full and base64-encoded) or a remote URL (passed through for the provider
// to fetch). An attachment with both or neither source is invalid.
package mail
