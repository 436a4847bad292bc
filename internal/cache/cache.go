package cache

import (
	"context"
	"time"
)

// Cache is the small surface the profile-stats path needs. The Redis
// implementation backs it in production; Noop stands in when no Redis is
// configured and in tests.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) GetJSON(context.Context, string, any) (bool, error) { return false, nil }

func (Noop) SetJSON(context.Context, string, any, time.Duration) error { return nil }

func (Noop) Delete(context.Context, ...string) error { return nil }

func (Noop) Close() error { return nil }
