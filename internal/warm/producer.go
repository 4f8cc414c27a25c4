// Package warm pre-populates the resolution cache with the mappings most
// likely to be hit next: the worker periodically publishes the top clicked
// codes, and the API writes them into the cache if absent.
package warm

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

type topSource interface {
	TopClicked(ctx context.Context, amount int, window time.Duration) ([]models.TopClickedEntry, error)
}

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type Producer struct {
	l      *slog.Logger
	src    topSource
	kw     kafkaWriter
	amount int
	window time.Duration
	t      trace.Tracer
}

func NewProducer(l *slog.Logger, src topSource, kw kafkaWriter, amount int, window time.Duration, t trace.Tracer) *Producer {
	return &Producer{
		l:      l,
		src:    src,
		kw:     kw,
		amount: amount,
		window: window,
		t:      t,
	}
}

// Run publishes a top-clicked snapshot on every tick until the context
// is cancelled.
func (p *Producer) Run(ctx context.Context, tick <-chan struct{}) {
	for {
		select {
		case <-tick:
			ctxTop, span := p.t.Start(ctx, "Produce top clicked")

			if err := p.produce(ctxTop); err != nil {
				p.l.Error("failed to produce top clicked", "error", err)
			}

			span.End()
		case <-ctx.Done():
			return
		}
	}
}

func (p *Producer) produce(ctx context.Context) error {
	entries, err := p.src.TopClicked(ctx, p.amount, p.window)
	if err != nil {
		return fmt.Errorf("failed to get top clicked: %w", err)
	}

	if len(entries) < 1 {
		return nil
	}

	msg := models.KafkaMessageTopClicked{
		ValidUntil: time.Now().Add(p.window),
		Entries: make([]struct {
			ShortCode string `json:"short_code"`
			LongURL   string `json:"long_url"`
		}, len(entries)),
	}
	for i, e := range entries {
		msg.Entries[i].ShortCode = e.ShortCode
		msg.Entries[i].LongURL = e.LongURL
	}

	msgMarshaled, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	// Inject trace from context into carrier
	carrier := propagation.MapCarrier{}
	propagator := propagation.TraceContext{}
	propagator.Inject(ctx, carrier)

	headers := make([]kafka.Header, len(carrier.Keys()))
	for i, key := range carrier.Keys() {
		headers[i] = kafka.Header{
			Key:   key,
			Value: []byte(carrier.Get(key)),
		}
	}

	p.l.Info("Sending top clicked to Kafka...", "entries", len(entries))

	if err := p.kw.WriteMessages(ctx, kafka.Message{
		Headers: headers,
		Topic:   models.TopicTopClicked,
		Value:   msgMarshaled,
	}); err != nil {
		return fmt.Errorf("failed to write message to Kafka: %w", err)
	}

	return nil
}
