// Package server provides the runtime plumbing shared by both transports:
// the ServerContext handed to tool handlers, health check endpoints, the
// streamable HTTP transport wrapper, and the dedicated Prometheus metrics
// server.
package server
