package server

import (
	"context"
	"sync"

	"github.com/mailfold/resend-mcp/internal/config"
	"github.com/mailfold/resend-mcp/internal/instrumentation"
	"github.com/mailfold/resend-mcp/internal/resend"
)

// ServerContext holds the per-process state handed to tool handlers: the
// immutable configuration, the provider client, and optional instrumentation.
// Tool calls share nothing else; all per-call state stays local to the call.
type ServerContext struct {
	ctx          context.Context
	cancel       context.CancelFunc
	config       *config.Config
	resendClient *resend.Client
	metrics      *instrumentation.Metrics
	auditLogger  *instrumentation.AuditLogger
	mu           sync.RWMutex
	shutdown     bool
}

// NewServerContext creates a new server context with a provider client built
// from the configuration.
func NewServerContext(ctx context.Context, cfg *config.Config, opts ...resend.Option) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	client, err := resend.NewClient(cfg.APIKey, opts...)
	if err != nil {
		cancel()
		return nil, err
	}

	return &ServerContext{
		ctx:          shutdownCtx,
		cancel:       cancel,
		config:       cfg,
		resendClient: client,
	}, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the immutable server configuration.
func (sc *ServerContext) Config() *config.Config {
	return sc.config
}

// ResendClient returns the provider client.
func (sc *ServerContext) ResendClient() *resend.Client {
	return sc.resendClient
}

// SetMetrics sets the metrics recorder used for tool instrumentation.
func (sc *ServerContext) SetMetrics(m *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = m
}

// Metrics returns the metrics recorder, or nil if not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used for tool instrumentation.
func (sc *ServerContext) SetAuditLogger(al *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = al
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
