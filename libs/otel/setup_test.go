package otelx

import (
	"context"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("OTEL_SAMPLING_RATIO", "2")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4317")
	t.Setenv("SERVICE_VERSION", "")
	t.Setenv("DEPLOYMENT_ENVIRONMENT", "staging")

	cfg := ConfigFromEnv("portal-service")
	if cfg.Enabled {
		t.Fatalf("expected tracing disabled")
	}
	if cfg.SampleRatio != 1 {
		t.Fatalf("expected out of range ratio to be ignored, got %v", cfg.SampleRatio)
	}
	if cfg.ServiceVersion != "dev" || cfg.Environment != "staging" {
		t.Fatalf("unexpected resource attributes %+v", cfg)
	}
	if cfg.OTLPEndpoint != "collector:4317" || cfg.ServiceName != "portal-service" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestSetupDisabledIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), Config{Enabled: false})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
