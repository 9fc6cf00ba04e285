package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/randevubot/randevubot/libs/kafkax"
	"github.com/segmentio/kafka-go"
)

const (
	TypeUserRegistered     = "portal.user.registered.v1"
	TypeCompanyCreated     = "portal.company.created.v1"
	TypeAppointmentDeleted = "portal.appointment.deleted.v1"
)

type Event struct {
	ID         string
	Type       string
	Key        string
	OccurredAt time.Time
	Data       any
}

func New(eventType, key string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		Key:        key,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

type UserRegistered struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

type CompanyCreated struct {
	CompanyID     string `json:"company_id"`
	Name          string `json:"name"`
	Sector        string `json:"sector"`
	PlanType      string `json:"plan_type"`
	ServicesSaved int    `json:"services_saved"`
}

type AppointmentDeleted struct {
	AppointmentID string    `json:"appointment_id"`
	CompanyID     string    `json:"company_id"`
	DeletedAt     time.Time `json:"deleted_at"`
}

type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

// DefaultPublishTimeout bounds a best-effort publish on the request path.
const DefaultPublishTimeout = 2 * time.Second

// Emit publishes evt after the write it describes has committed. The publish
// is detached from ctx's cancellation and never outlives timeout; failures
// are logged and never reach the caller.
func Emit(ctx context.Context, p Publisher, logger *slog.Logger, timeout time.Duration, evt Event) {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()
	if err := p.Publish(pctx, evt); err != nil {
		logger.Warn("event publish failed", "event_type", evt.Type, "event_id", evt.ID, "err", err)
	}
}

type envelope struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func encode(ctx context.Context, evt Event) (kafka.Message, error) {
	value, err := json.Marshal(envelope{
		EventID:    evt.ID,
		EventType:  evt.Type,
		OccurredAt: evt.OccurredAt,
		Data:       evt.Data,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("events: encode %s: %w", evt.Type, err)
	}
	return kafkax.NewMessage(ctx, kafkax.EventMeta{EventID: evt.ID, EventType: evt.Type}, evt.Key, value), nil
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each event synchronously to the topic named after
// its type.
type KafkaPublisher struct {
	writer messageWriter
	logger *slog.Logger
}

func NewKafkaPublisher(brokers []string, logger *slog.Logger) *KafkaPublisher {
	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers:      brokers,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: DefaultPublishTimeout,
		MaxAttempts:  3,
	})
	return &KafkaPublisher{writer: writer, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt Event) error {
	msg, err := encode(ctx, evt)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("events: publish %s: %w", evt.Type, err)
	}
	p.logger.Debug("event published", "event_type", evt.Type, "event_id", evt.ID)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher is used when no brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(_ context.Context, evt Event) error {
	p.logger.Debug("event dropped (kafka disabled)", "event_type", evt.Type, "event_id", evt.ID)
	return nil
}
