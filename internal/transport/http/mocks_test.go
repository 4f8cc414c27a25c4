package http

import (
	"context"

	"github.com/mwilczek/shortener/internal/models"
	"github.com/stretchr/testify/mock"
)

type mockurlService struct {
	mock.Mock
}

func (m *mockurlService) Resolve(ctx context.Context, code string, meta models.RequestMeta) (string, error) {
	args := m.Called(ctx, code, meta)
	return args.String(0), args.Error(1)
}

func (m *mockurlService) Shorten(ctx context.Context, longURL string, ownerID int64) (models.URLMapping, error) {
	args := m.Called(ctx, longURL, ownerID)
	return args.Get(0).(models.URLMapping), args.Error(1)
}

func (m *mockurlService) ListByOwner(ctx context.Context, ownerID int64) ([]models.URLMapping, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.URLMapping), args.Error(1)
}

func (m *mockurlService) Stats(ctx context.Context, code string, ownerID int64) (int64, error) {
	args := m.Called(ctx, code, ownerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockauthService struct {
	mock.Mock
}

func (m *mockauthService) Register(ctx context.Context, email, password string) (int64, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockauthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockauthService) VerifyToken(tokenString string) (int64, error) {
	args := m.Called(tokenString)
	return args.Get(0).(int64), args.Error(1)
}
