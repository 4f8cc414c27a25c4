// Package producer publishes click events onto the durable clicks topic.
package producer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mwilczek/shortener/internal/models"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Producer struct {
	l            *slog.Logger
	kw           kafkaWriter
	t            trace.Tracer
	writeTimeout time.Duration
}

func New(l *slog.Logger, kw kafkaWriter, t trace.Tracer, writeTimeout time.Duration) *Producer {
	return &Producer{
		l:            l,
		kw:           kw,
		t:            t,
		writeTimeout: writeTimeout,
	}
}

// PublishClick writes one click event. The write deadline is short: the
// caller drops the event on failure rather than stalling a redirect.
func (p *Producer) PublishClick(ctx context.Context, event models.KafkaMessageClick) error {
	ctx, span := p.t.Start(ctx, "Publish click event")
	defer span.End()

	msgMarshaled, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	// Inject trace from context into carrier
	carrier := propagation.MapCarrier{}
	propagator := propagation.TraceContext{}
	propagator.Inject(ctx, carrier)

	// Kafka message headers for the trace context
	headers := make([]kafka.Header, len(carrier.Keys()))
	for i, key := range carrier.Keys() {
		headers[i] = kafka.Header{
			Key:   key,
			Value: []byte(carrier.Get(key)),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, p.writeTimeout)
	defer cancel()

	if err := p.kw.WriteMessages(ctx,
		kafka.Message{
			Headers: headers,
			Topic:   models.TopicClicks,
			Value:   msgMarshaled,
		}); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	return nil
}
