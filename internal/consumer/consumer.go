// Package consumer drains the clicks topic into the analytics store.
//
// The loop keeps exactly one message in flight: fetch, process, commit,
// then fetch the next. Offsets are committed even when processing fails,
// after the payload has been pushed to the dead-letter topic, so one bad
// message can never wedge the queue.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/mwilczek/shortener/internal/models"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

type clickStore interface {
	InsertClick(ctx context.Context, click models.ClickRow) error
}

type kafkaReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type kafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type metricsProvider interface {
	Processed()
	DeadLettered()
}

type Consumer struct {
	l     *slog.Logger
	kr    kafkaReader
	store clickStore
	dlq   kafkaWriter
	m     metricsProvider
	t     trace.Tracer
}

func New(l *slog.Logger, kr kafkaReader, store clickStore, dlq kafkaWriter, m metricsProvider, t trace.Tracer) *Consumer {
	return &Consumer{
		l:     l,
		kr:    kr,
		store: store,
		dlq:   dlq,
		m:     m,
		t:     t,
	}
}

func (c *Consumer) Run(ctx context.Context) {
	for {
		m, err := c.kr.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.l.Error("Failed to fetch message", "error", err)
			continue
		}

		propagator := propagation.TraceContext{}
		carrier := propagation.MapCarrier{}

		// Get trace context from message headers
		for _, header := range m.Headers {
			carrier.Set(header.Key, string(header.Value))
		}

		ctxEvent := propagator.Extract(ctx, carrier)

		c.handle(ctxEvent, m)

		// A crash before this line causes redelivery; the insert runs
		// again, which at-least-once delivery accepts.
		if err := c.kr.CommitMessages(ctx, m); err != nil {
			c.l.Error("Failed to commit message", "error", err)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, m kafka.Message) {
	ctx, span := c.t.Start(ctx, "Handle click event")
	defer span.End()

	var msg models.KafkaMessageClick
	if err := json.Unmarshal(m.Value, &msg); err != nil {
		c.l.Error("Failed to unmarshal JSON",
			"topic", m.Topic,
			"error", err,
		)
		c.deadLetter(ctx, m)
		return
	}

	row := models.ClickRow{
		URLID:     msg.URLID,
		IPAddress: msg.IPAddress,
		UserAgent: msg.UserAgent,
		CreatedAt: msg.Timestamp,
	}

	if err := c.store.InsertClick(ctx, row); err != nil {
		c.l.Error("Failed to write click to DB",
			"error", err,
			"url_id", msg.URLID,
		)
		c.deadLetter(ctx, m)
		return
	}

	c.m.Processed()
}

// deadLetter parks an unprocessable payload for inspection. Best effort:
// if the dead-letter write fails too, the event is lost, which this
// pipeline accepts in exchange for liveness.
func (c *Consumer) deadLetter(ctx context.Context, m kafka.Message) {
	if err := c.dlq.WriteMessages(ctx, kafka.Message{
		Topic:   models.TopicDeadLetter,
		Value:   m.Value,
		Headers: m.Headers,
	}); err != nil {
		c.l.Error("Failed to write to dead-letter topic", "error", err)
		return
	}

	c.m.DeadLettered()
}
