package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestPortalCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPortal(reg)

	m.ObserveLoad(SourceSeed)
	m.ObserveLoad(SourceSeed)
	m.ObserveDelete("remote_error")
	m.ObserveRegistration()

	if got := testutil.ToFloat64(m.directoryLoads.WithLabelValues(SourceSeed)); got != 2 {
		t.Fatalf("expected 2 seed loads, got %v", got)
	}
	if got := testutil.ToFloat64(m.deletes.WithLabelValues("remote_error")); got != 1 {
		t.Fatalf("expected 1 failed delete, got %v", got)
	}
	if got := testutil.ToFloat64(m.registrations); got != 1 {
		t.Fatalf("expected 1 registration, got %v", got)
	}
}

func TestNilPortalIsSafe(t *testing.T) {
	var m *Portal
	m.ObserveLoad(SourceRemote)
	m.ObserveDelete("ok")
	m.ObserveSubmission("ok")
	m.ObserveRegistration()
}
