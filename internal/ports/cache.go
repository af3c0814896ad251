package ports

import (
	"context"
	"time"
)

// Cache abstracts Redis (or an in-process fallback) for token revocation
// and hot lookups.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
