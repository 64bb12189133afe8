package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shopping-cart/models"
)

const cartSummaryPrefix = "cart:summary:"

var ErrCacheMiss = errors.New("cache miss")

// CartCache holds rendered cart summaries keyed by cart revision, so an entry
// is never served for a state other than the one it was built from. Each
// process writes under its own namespace because revisions are per cart
// instance.
type CartCache interface {
	Get(ctx context.Context, revision uint64) (*models.CartSummary, error)
	Set(ctx context.Context, revision uint64, summary models.CartSummary) error
	Invalidate(ctx context.Context) error
}

type NoopCartCache struct{}

func (NoopCartCache) Get(context.Context, uint64) (*models.CartSummary, error) {
	return nil, ErrCacheMiss
}
func (NoopCartCache) Set(context.Context, uint64, models.CartSummary) error { return nil }
func (NoopCartCache) Invalidate(context.Context) error { return nil }

type RedisCartCache struct {
	client    *redis.Client
	ttl       time.Duration
	namespace string
}

func NewRedisCartCache(client *redis.Client, ttl time.Duration) *RedisCartCache {
	return &RedisCartCache{
		client:    client,
		ttl:       ttl,
		namespace: cartSummaryPrefix + uuid.NewString() + ":",
	}
}

// NewCartCache picks the Redis cache when a client is available.
func NewCartCache(client *redis.Client, ttl time.Duration) CartCache {
	if client == nil {
		return NoopCartCache{}
	}
	return NewRedisCartCache(client, ttl)
}

func (r *RedisCartCache) key(revision uint64) string {
	return fmt.Sprintf("%sr%d", r.namespace, revision)
}

func (r *RedisCartCache) Get(ctx context.Context, revision uint64) (*models.CartSummary, error) {
	key := r.key(revision)
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var summary models.CartSummary
	if err := json.Unmarshal(raw, &summary); err != nil {
		// A corrupt entry is as good as none.
		_ = r.client.Del(ctx, key).Err()
		return nil, ErrCacheMiss
	}
	return &summary, nil
}

func (r *RedisCartCache) Set(ctx context.Context, revision uint64, summary models.CartSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.key(revision), data, r.ttl).Err()
}

// Invalidate drops every revision cached by this process.
func (r *RedisCartCache) Invalidate(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.namespace+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
