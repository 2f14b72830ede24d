// Package instrumentation provides OpenTelemetry metrics, tracing, and audit
// logging for the server.
//
// The Provider wires metric and trace exporters from environment-driven
// configuration: Prometheus (default), OTLP, or stdout for metrics; OTLP,
// stdout, or none (default) for traces. Metrics cover MCP tool invocations,
// provider send operations, attachment resolution, and HTTP transport
// requests.
//
// Audit logging records each tool invocation with cardinality-controlled
// identifiers; full recipient addresses are only logged when explicitly
// enabled via AUDIT_LOGGING_INCLUDE_PII.
package instrumentation
