package consumer

import (
	"context"

	"github.com/mwilczek/shortener/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/mock"
)

type mockclickStore struct {
	mock.Mock
}

func (m *mockclickStore) InsertClick(ctx context.Context, click models.ClickRow) error {
	args := m.Called(ctx, click)
	return args.Error(0)
}

type mockkafkaReader struct {
	mock.Mock
}

func (m *mockkafkaReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	args := m.Called(ctx)
	return args.Get(0).(kafka.Message), args.Error(1)
}

func (m *mockkafkaReader) CommitMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type mockkafkaWriter struct {
	mock.Mock
}

func (m *mockkafkaWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

type mockmetricsProvider struct {
	mock.Mock
}

func (m *mockmetricsProvider) Processed() {
	m.Called()
}

func (m *mockmetricsProvider) DeadLettered() {
	m.Called()
}
