package runtime

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestReadyzReportsFailingChecks(t *testing.T) {
	mux := NewBaseMuxWithReady(
		ReadyCheck{Name: "db", Check: func(context.Context) error { return nil }},
		ReadyCheck{Name: "redis", Check: func(context.Context) error { return errors.New("connection refused") }},
		ReadyCheck{Name: "skipped"},
	)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if body := rec.Body.String(); !strings.Contains(body, "redis: connection refused") || strings.Contains(body, "db") {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestReadyzOKWithoutChecks(t *testing.T) {
	mux := NewBaseMuxWithReady()
	for _, path := range []string{"/healthz", "/readyz"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestLoggerHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "portal", ParseLevel("warn"))
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, `"service":"portal"`) {
		t.Fatalf("unexpected log output %q", out)
	}
}

func TestShutdownGivesStopAFreshDeadline(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "test", ParseLevel("info"))
	Shutdown(logger, "http server", time.Second, func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok || ctx.Err() != nil {
			t.Fatalf("expected live context with deadline")
		}
		return nil
	})
	if !strings.Contains(buf.String(), "http server stopped") {
		t.Fatalf("expected stop log, got %s", buf.String())
	}

	buf.Reset()
	Shutdown(logger, "otel", time.Second, func(context.Context) error { return errors.New("flush failed") })
	if !strings.Contains(buf.String(), "otel shutdown error") {
		t.Fatalf("expected error log, got %s", buf.String())
	}
}
