package repository

import (
	"context"
	"errors"
	"time"

	"github.com/valkey-io/valkey-go"
)

type ValkeyRepo struct {
	client valkey.Client
}

func NewValkeyRepo(client valkey.Client) *ValkeyRepo {
	return &ValkeyRepo{client: client}
}

// GetURL returns the cached long URL for a code, or "" on a miss.
// A miss is never an error; backend failures are returned so the caller
// can degrade to a store lookup.
func (r *ValkeyRepo) GetURL(ctx context.Context, code string) (string, error) {
	url, err := r.client.Do(ctx, r.client.B().Get().Key(code).Build()).ToString()
	if errors.Is(err, valkey.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return url, nil
}

// SetURL writes a code -> URL entry with the given TTL, replacing any
// existing entry and resetting its expiry.
func (r *ValkeyRepo) SetURL(ctx context.Context, code, longURL string, ttl time.Duration) error {
	return r.client.Do(ctx,
		r.client.B().
			Set().
			Key(code).
			Value(longURL).
			Ex(ttl).
			Build(),
	).Error()
}

// SetURLIfAbsent is the warm path: NX so a pre-warm never clobbers an
// entry a live redirect just wrote.
func (r *ValkeyRepo) SetURLIfAbsent(ctx context.Context, code, longURL string, ttl time.Duration) error {
	return r.client.Do(ctx,
		r.client.B().
			Set().
			Key(code).
			Value(longURL).
			Nx().
			Ex(ttl).
			Build(),
	).Error()
}
