package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/randevubot/randevubot/libs/kafkax"
	"github.com/randevubot/randevubot/libs/runtime"
	"github.com/segmentio/kafka-go"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error { return nil }

func TestKafkaPublisherWritesEnvelope(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w, logger: runtime.DiscardLogger()}

	evt := New(TypeAppointmentDeleted, "c-1", AppointmentDeleted{
		AppointmentID: "a-1",
		CompanyID:     "c-1",
		DeletedAt:     time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
	})
	if err := p.Publish(context.Background(), evt); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(w.msgs))
	}
	msg := w.msgs[0]
	if msg.Topic != TypeAppointmentDeleted || string(msg.Key) != "c-1" {
		t.Fatalf("unexpected message %+v", msg)
	}
	if kafkax.ExtractEventMeta(msg).EventID != evt.ID {
		t.Fatalf("expected event id header")
	}

	var body struct {
		EventType string `json:"event_type"`
		Data      struct {
			AppointmentID string `json:"appointment_id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(msg.Value, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.EventType != TypeAppointmentDeleted || body.Data.AppointmentID != "a-1" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestKafkaPublisherWrapsWriteError(t *testing.T) {
	boom := errors.New("leader not available")
	p := &KafkaPublisher{writer: &fakeWriter{err: boom}, logger: runtime.DiscardLogger()}
	if err := p.Publish(context.Background(), New(TypeCompanyCreated, "c-1", CompanyCreated{})); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

type stalledWriter struct {
	liveOnEntry bool
}

func (w *stalledWriter) WriteMessages(ctx context.Context, _ ...kafka.Message) error {
	w.liveOnEntry = ctx.Err() == nil
	<-ctx.Done()
	return ctx.Err()
}

func (w *stalledWriter) Close() error { return nil }

func TestEmitIsDetachedAndBounded(t *testing.T) {
	w := &stalledWriter{}
	p := &KafkaPublisher{writer: w, logger: runtime.DiscardLogger()}

	// The request is already gone by the time the event goes out.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	Emit(ctx, p, runtime.DiscardLogger(), 20*time.Millisecond, New(TypeCompanyCreated, "c-1", CompanyCreated{}))
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("emit must give up after its timeout, took %v", elapsed)
	}
	if !w.liveOnEntry {
		t.Fatalf("publish must not inherit the caller's cancellation")
	}
}
