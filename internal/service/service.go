package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mwilczek/shortener/internal/errorz"
	"github.com/mwilczek/shortener/internal/models"
	"github.com/mwilczek/shortener/pkg/codegen"
	"go.opentelemetry.io/otel/trace"
)

// Cache operations get a deadline well below the request timeout, so a
// slow cache degrades to a store lookup instead of stalling the redirect.
const cacheOpTimeout = 250 * time.Millisecond

const maxCodeAttempts = 3

type mappingStore interface {
	FindByCode(ctx context.Context, code string) (models.URLMapping, error)
	Insert(ctx context.Context, code, longURL string, ownerID int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]models.URLMapping, error)
	CountClicks(ctx context.Context, urlID int64) (int64, error)
}

type resolutionCache interface {
	GetURL(ctx context.Context, code string) (string, error)
	SetURL(ctx context.Context, code, longURL string, ttl time.Duration) error
}

type clickPublisher interface {
	PublishClick(ctx context.Context, event models.KafkaMessageClick) error
}

type Service struct {
	store    mappingStore
	cache    resolutionCache
	pub      clickPublisher
	l        *slog.Logger
	t        trace.Tracer
	cacheTTL time.Duration

	generate func() string
}

func New(store mappingStore, cache resolutionCache, pub clickPublisher, l *slog.Logger, t trace.Tracer, cacheTTL time.Duration) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		pub:      pub,
		l:        l,
		t:        t,
		cacheTTL: cacheTTL,
		generate: codegen.Generate,
	}
}

// Resolve maps a short code to its long URL: cache first, store on miss,
// cache repopulated from the store value. A store hit also emits a click
// event in the background. The cache stores only the long URL, so a
// cache-hit redirect has no url id to attribute and emits nothing.
func (s *Service) Resolve(ctx context.Context, code string, meta models.RequestMeta) (string, error) {
	ctx, span := s.t.Start(ctx, "Resolve short code")
	defer span.End()

	cacheCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	longURL, err := s.cache.GetURL(cacheCtx, code)
	cancel()
	if err != nil {
		// Cache trouble is never fatal to a redirect
		s.l.Warn("cache lookup failed, falling back to store", "error", err, "code", code)
		longURL = ""
	}

	if longURL != "" {
		return longURL, nil
	}

	mapping, err := s.store.FindByCode(ctx, code)
	if errors.Is(err, errorz.ErrNotFound) {
		// Unknown codes are not cached
		return "", errorz.ErrNotFound
	} else if err != nil {
		s.l.Error("failed to look up short code", "error", err, "code", code)
		return "", fmt.Errorf("failed to look up short code: %w", err)
	}

	setCtx, cancel := context.WithTimeout(ctx, cacheOpTimeout)
	if err := s.cache.SetURL(setCtx, code, mapping.LongURL, s.cacheTTL); err != nil {
		s.l.Warn("failed to populate cache", "error", err, "code", code)
	}
	cancel()

	// Fire-and-forget: the redirect response never waits on Kafka
	go s.emitClick(context.WithoutCancel(ctx), mapping.ID, meta)

	return mapping.LongURL, nil
}

func (s *Service) emitClick(ctx context.Context, urlID int64, meta models.RequestMeta) {
	event := models.KafkaMessageClick{
		EventID:   uuid.New(),
		URLID:     urlID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Timestamp: time.Now().UTC(),
	}

	if err := s.pub.PublishClick(ctx, event); err != nil {
		// Click loss is accepted; the redirect already succeeded
		s.l.Error("failed to publish click event, dropping", "error", err, "url_id", urlID)
	}
}

// Shorten creates a mapping under a freshly generated code, retrying on
// the off chance a generated code is already taken.
func (s *Service) Shorten(ctx context.Context, longURL string, ownerID int64) (models.URLMapping, error) {
	ctx, span := s.t.Start(ctx, "Shorten URL")
	defer span.End()

	for range maxCodeAttempts {
		code := s.generate()

		id, err := s.store.Insert(ctx, code, longURL, ownerID)
		if errors.Is(err, errorz.ErrCodeTaken) {
			s.l.Warn("generated code collided, retrying", "code", code)
			continue
		} else if err != nil {
			s.l.Error("failed to store mapping", "error", err)
			return models.URLMapping{}, fmt.Errorf("failed to store mapping: %w", err)
		}

		return models.URLMapping{
			ID:        id,
			ShortCode: code,
			LongURL:   longURL,
			OwnerID:   ownerID,
		}, nil
	}

	return models.URLMapping{}, fmt.Errorf("no free short code after %d attempts: %w", maxCodeAttempts, errorz.ErrCodeTaken)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]models.URLMapping, error) {
	ctx, span := s.t.Start(ctx, "List mappings by owner")
	defer span.End()

	mappings, err := s.store.ListByOwner(ctx, ownerID)
	if err != nil {
		s.l.Error("failed to list mappings", "error", err, "owner_id", ownerID)
		return nil, fmt.Errorf("failed to list mappings: %w", err)
	}

	return mappings, nil
}

// Stats returns the click count for one of the caller's codes. Codes
// owned by someone else look like they do not exist.
func (s *Service) Stats(ctx context.Context, code string, ownerID int64) (int64, error) {
	ctx, span := s.t.Start(ctx, "Short code stats")
	defer span.End()

	mapping, err := s.store.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return 0, errorz.ErrNotFound
		}
		s.l.Error("failed to look up short code", "error", err, "code", code)
		return 0, fmt.Errorf("failed to look up short code: %w", err)
	}

	if mapping.OwnerID != ownerID {
		return 0, errorz.ErrNotFound
	}

	count, err := s.store.CountClicks(ctx, mapping.ID)
	if err != nil {
		s.l.Error("failed to count clicks", "error", err, "url_id", mapping.ID)
		return 0, fmt.Errorf("failed to count clicks: %w", err)
	}

	return count, nil
}
