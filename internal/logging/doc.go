// Package logging provides structured logging utilities for the server.
//
// It centralizes slog attribute naming and PII handling: recipient addresses
// are hashed before logging, API keys are never logged directly, and the
// stdio transport keeps all log output on stderr so stdout stays reserved
// for MCP framing.
package logging
