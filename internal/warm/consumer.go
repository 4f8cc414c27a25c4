package warm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/mwilczek/shortener/internal/models"
	"github.com/segmentio/kafka-go"
)

type warmCache interface {
	SetURLIfAbsent(ctx context.Context, code, longURL string, ttl time.Duration) error
}

type kafkaReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}

type Consumer struct {
	l     *slog.Logger
	kr    kafkaReader
	cache warmCache
}

func NewConsumer(l *slog.Logger, kr kafkaReader, cache warmCache) *Consumer {
	return &Consumer{
		l:     l,
		kr:    kr,
		cache: cache,
	}
}

// ReadMessages applies warm snapshots to the cache. Entries are written
// NX so a snapshot never overwrites what a live redirect just cached.
func (c *Consumer) ReadMessages(ctx context.Context) {
	for {
		m, err := c.kr.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			c.l.Error("Failed to read message", "error", err)
			continue
		}

		if m.Topic != models.TopicTopClicked {
			continue
		}

		var msg models.KafkaMessageTopClicked
		if err := json.Unmarshal(m.Value, &msg); err != nil {
			c.l.Error("Failed to unmarshal JSON",
				"topic", m.Topic,
				"error", err)
			continue
		}

		ttl := time.Until(msg.ValidUntil)
		if ttl <= 0 {
			// Stale snapshot, e.g. replayed after downtime
			continue
		}

		for _, entry := range msg.Entries {
			if err := c.cache.SetURLIfAbsent(ctx, entry.ShortCode, entry.LongURL, ttl); err != nil {
				c.l.Error("Failed to warm cache entry",
					"code", entry.ShortCode,
					"error", err)
			}
		}
	}
}
