package instrumentation

import (
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "")
	t.Setenv("METRICS_EXPORTER", "")
	t.Setenv("TRACING_EXPORTER", "")

	cfg := DefaultConfig()

	if cfg.ServiceName != "resend-mcp" {
		t.Errorf("ServiceName = %q, want resend-mcp", cfg.ServiceName)
	}
	if !cfg.Enabled {
		t.Error("instrumentation should be enabled by default")
	}
	if cfg.MetricsExporter != ExporterPrometheus {
		t.Errorf("MetricsExporter = %q, want %q", cfg.MetricsExporter, ExporterPrometheus)
	}
	if cfg.TracingExporter != ExporterNone {
		t.Errorf("TracingExporter = %q, want %q", cfg.TracingExporter, ExporterNone)
	}
	if !cfg.AuditLogging.Enabled {
		t.Error("audit logging should be enabled by default")
	}
	if cfg.AuditLogging.IncludePII {
		t.Error("PII logging should be disabled by default")
	}
}

func TestDefaultConfigEnvOverrides(t *testing.T) {
	t.Setenv("INSTRUMENTATION_ENABLED", "false")
	t.Setenv("METRICS_EXPORTER", "stdout")
	t.Setenv("TRACING_EXPORTER", "otlp")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")
	t.Setenv("AUDIT_LOGGING_INCLUDE_PII", "true")

	cfg := DefaultConfig()

	if cfg.Enabled {
		t.Error("Enabled should follow INSTRUMENTATION_ENABLED=false")
	}
	if cfg.MetricsExporter != ExporterStdout {
		t.Errorf("MetricsExporter = %q, want stdout", cfg.MetricsExporter)
	}
	if cfg.TracingExporter != ExporterOTLP {
		t.Errorf("TracingExporter = %q, want otlp", cfg.TracingExporter)
	}
	if cfg.OTLPEndpoint != "collector:4318" {
		t.Errorf("OTLPEndpoint = %q, want collector:4318", cfg.OTLPEndpoint)
	}
	if !cfg.AuditLogging.IncludePII {
		t.Error("IncludePII should follow AUDIT_LOGGING_INCLUDE_PII=true")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(c *Config) {},
		},
		{
			name:    "negative sampling rate",
			modify:  func(c *Config) { c.TraceSamplingRate = -0.1 },
			wantErr: "sampling rate",
		},
		{
			name:    "sampling rate above one",
			modify:  func(c *Config) { c.TraceSamplingRate = 1.5 },
			wantErr: "sampling rate",
		},
		{
			name:    "unknown metrics exporter",
			modify:  func(c *Config) { c.MetricsExporter = "statsd" },
			wantErr: "invalid metrics exporter",
		},
		{
			name:    "unknown tracing exporter",
			modify:  func(c *Config) { c.TracingExporter = "jaeger" },
			wantErr: "invalid tracing exporter",
		},
		{
			name: "otlp tracing without endpoint",
			modify: func(c *Config) {
				c.TracingExporter = ExporterOTLP
				c.OTLPEndpoint = ""
			},
			wantErr: "OTLP endpoint is required",
		},
		{
			name: "otlp metrics without endpoint",
			modify: func(c *Config) {
				c.MetricsExporter = ExporterOTLP
				c.OTLPEndpoint = ""
			},
			wantErr: "OTLP endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{
				ServiceName:       "resend-mcp",
				Enabled:           true,
				MetricsExporter:   ExporterPrometheus,
				TracingExporter:   ExporterNone,
				TraceSamplingRate: 0.1,
			}
			tt.modify(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}
