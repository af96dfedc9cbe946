package cache

import (
	"context"
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Service is a small TTL cache. The monitor uses it to front the on-demand
// quote endpoint so ad-hoc reads cannot hammer the upstream APIs between
// scheduled cycles. Values are stored as JSON in every backend, so entries
// never outlive a process restart in the memory backend and carry no schema
// in the Redis one.
type Service interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string, dest interface{}) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
