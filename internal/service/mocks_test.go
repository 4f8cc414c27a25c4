package service

import (
	"context"
	"time"

	"github.com/mwilczek/shortener/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockmappingStore struct {
	mock.Mock
}

func (m *mockmappingStore) FindByCode(ctx context.Context, code string) (models.URLMapping, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(models.URLMapping), args.Error(1)
}

func (m *mockmappingStore) Insert(ctx context.Context, code, longURL string, ownerID int64) (int64, error) {
	args := m.Called(ctx, code, longURL, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockmappingStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.URLMapping, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.URLMapping), args.Error(1)
}

func (m *mockmappingStore) CountClicks(ctx context.Context, urlID int64) (int64, error) {
	args := m.Called(ctx, urlID)
	return args.Get(0).(int64), args.Error(1)
}

type mockresolutionCache struct {
	mock.Mock
}

func (m *mockresolutionCache) GetURL(ctx context.Context, code string) (string, error) {
	args := m.Called(ctx, code)
	return args.String(0), args.Error(1)
}

func (m *mockresolutionCache) SetURL(ctx context.Context, code, longURL string, ttl time.Duration) error {
	args := m.Called(ctx, code, longURL, ttl)
	return args.Error(0)
}

type mockclickPublisher struct {
	mock.Mock
}

func (m *mockclickPublisher) PublishClick(ctx context.Context, event models.KafkaMessageClick) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type mockuserStore struct {
	mock.Mock
}

func (m *mockuserStore) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockuserStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(models.User), args.Error(1)
}
