package kafkax

import (
	"context"
	"testing"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

func TestNewMessageCarriesMetaAndTrace(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID, TraceFlags: trace.FlagsSampled})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	msg := NewMessage(ctx, EventMeta{EventID: "evt-1", EventType: "portal.company.created.v1"}, "company-1", []byte(`{}`))
	if msg.Topic != "portal.company.created.v1" {
		t.Fatalf("unexpected topic %q", msg.Topic)
	}
	if HeaderValue(msg.Headers, "traceparent") == "" {
		t.Fatalf("expected traceparent header, got %+v", msg.Headers)
	}

	meta := ExtractEventMeta(msg)
	if meta.EventID != "evt-1" || meta.EventType != "portal.company.created.v1" {
		t.Fatalf("unexpected meta %+v", meta)
	}
	got := trace.SpanContextFromContext(ExtractTraceContext(context.Background(), msg))
	if got.TraceID() != traceID {
		t.Fatalf("expected trace id round trip, got %s", got.TraceID())
	}
}

func TestExtractEventMetaFallsBackToKeyAndTopic(t *testing.T) {
	meta := ExtractEventMeta(kafka.Message{Topic: "t", Key: []byte("k")})
	if meta.EventID != "k" || meta.EventType != "t" {
		t.Fatalf("unexpected meta %+v", meta)
	}
}

func TestSplitBrokers(t *testing.T) {
	got := SplitBrokers(" kafka:9092, ,kafka2:9092 ")
	if len(got) != 2 || got[1] != "kafka2:9092" {
		t.Fatalf("unexpected brokers %#v", got)
	}
}
