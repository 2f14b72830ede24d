package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/mailfold/resend-mcp/internal/instrumentation"
)

// HTTPServerConfig holds configuration for the streamable HTTP transport.
type HTTPServerConfig struct {
	// Addr is the address to bind the HTTP server to (e.g., ":8080").
	Addr string

	// DisableStreaming disables SSE streaming on the MCP endpoint, forcing
	// plain request/response exchanges.
	DisableStreaming bool

	// Metrics, when non-nil, enables per-request HTTP metrics.
	Metrics *instrumentation.Metrics
}

// HTTPServer serves the MCP protocol over streamable HTTP on /mcp alongside
// health endpoints.
type HTTPServer struct {
	mcpServer  *mcpserver.MCPServer
	config     HTTPServerConfig
	health     *HealthChecker
	httpServer *http.Server
}

// NewHTTPServer creates a new streamable HTTP transport server for the given
// MCP server.
func NewHTTPServer(mcpSrv *mcpserver.MCPServer, sc *ServerContext, config HTTPServerConfig) *HTTPServer {
	return &HTTPServer{
		mcpServer: mcpSrv,
		config:    config,
		health:    NewHealthChecker(sc),
	}
}

// HealthChecker returns the health checker so callers can flip readiness
// during startup and shutdown.
func (s *HTTPServer) HealthChecker() *HealthChecker {
	return s.health
}

// statusRecorder captures the response status code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withHTTPMetrics wraps a handler to record request count and duration.
func (s *HTTPServer) withHTTPMetrics(path string, next http.Handler) http.Handler {
	if s.config.Metrics == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.config.Metrics.RecordHTTPRequest(r.Context(), r.Method, path, rec.status, time.Since(start))
	})
}

// Start starts the HTTP server in a blocking manner.
func (s *HTTPServer) Start() error {
	mux := http.NewServeMux()

	s.health.RegisterHealthEndpoints(mux)

	opts := []mcpserver.StreamableHTTPOption{
		mcpserver.WithEndpointPath("/mcp"),
	}
	if s.config.DisableStreaming {
		opts = append(opts, mcpserver.WithDisableStreaming(true))
	}

	streamSrv := mcpserver.NewStreamableHTTPServer(s.mcpServer, opts...)
	mux.Handle("/mcp", s.withHTTPMetrics("/mcp", streamSrv))

	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("starting streamable HTTP server", "addr", s.config.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server. The health checker reports
// not ready as soon as shutdown begins.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)

	if s.httpServer != nil {
		slog.Info("shutting down streamable HTTP server")
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
