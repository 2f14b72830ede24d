// Package common provides shared helpers for MCP tool handlers: the
// instrumented handler wrapper that maps domain errors to in-band tool
// results and records metrics and audit entries, plus accessors for raw
// tool arguments.
package common
