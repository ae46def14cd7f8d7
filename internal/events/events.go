// Package events carries the promotion change feed between site instances.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Event types.
const (
	PromotionChanged = "promotion.changed"
)

// Event is a change notification. Consumers treat it as a hint to reload; the
// payload is informational.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher sends change events.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// MessageReader is the subset of *kafka.Reader used by Listen.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// NewWriter creates a kafka writer for topic.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
	}
}

// NewReader creates a kafka reader for topic. Every instance should use its
// own groupID so that each one sees every event.
func NewReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}

// kafkaPublisher implements Publisher on a kafka topic.
type kafkaPublisher struct {
	writer MessageWriter
	logger zerolog.Logger
}

// NewKafkaPublisher creates a publisher that writes JSON events keyed by entity id.
func NewKafkaPublisher(writer MessageWriter, logger zerolog.Logger) Publisher {
	return &kafkaPublisher{
		writer: writer,
		logger: logger.With().Str("component", "event-publisher").Logger(),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, evt Event) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	data, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.EntityID),
		Value: data,
		Time:  evt.OccurredAt,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error().
			Err(err).
			Str("event_type", evt.Type).
			Str("entity_id", evt.EntityID).
			Msg("failed to publish event")
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug().
		Str("event_type", evt.Type).
		Str("entity_id", evt.EntityID).
		Str("action", evt.Action).
		Msg("event published")
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event. It is used when
// no brokers are configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }

// Listen reads events until ctx is cancelled and calls fn for each one.
// Undecodable messages are skipped. Read errors are retried after backoff.
func Listen(ctx context.Context, reader MessageReader, backoff time.Duration, logger zerolog.Logger, fn func(Event)) {
	logger = logger.With().Str("component", "event-listener").Logger()
	logger.Info().Msg("event listener started")

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				logger.Info().Msg("event listener stopped")
				return
			}
			logger.Warn().Err(err).Dur("backoff", backoff).Msg("failed to read event")

			select {
			case <-ctx.Done():
				logger.Info().Msg("event listener stopped")
				return
			case <-time.After(backoff):
			}
			continue
		}

		var evt Event
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			logger.Warn().Err(err).Int64("offset", msg.Offset).Msg("skipping undecodable event")
			continue
		}
		if evt.Type == "" {
			continue
		}

		fn(evt)
	}
}
