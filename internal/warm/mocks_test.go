package warm

import (
	"context"
	"time"

	"github.com/mwilczek/shortener/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type mocktopSource struct {
	mock.Mock
}

func (m *mocktopSource) TopClicked(ctx context.Context, amount int, window time.Duration) ([]models.TopClickedEntry, error) {
	args := m.Called(ctx, amount, window)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TopClickedEntry), args.Error(1)
}

type mockkafkaWriter struct {
	mock.Mock
}

func (m *mockkafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type mockkafkaReader struct {
	mock.Mock
}

func (m *mockkafkaReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

type mockwarmCache struct {
	mock.Mock
}

func (m *mockwarmCache) SetURLIfAbsent(ctx context.Context, code, longURL string, ttl time.Duration) error {
	args := m.Called(ctx, code, longURL, ttl)
	return args.Error(0)
}
