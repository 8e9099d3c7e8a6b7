package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	redis_db "github.com/sireline/sireline/internal/redis-db"

	"github.com/sireline/sireline/config"

	"github.com/go-redis/cache/v9"
)

// Dog records are small and nearly immutable, so the local layer absorbs most
// of the lookup traffic before it reaches redis.
const localCacheSize = 128000

// Cache is the read-through cache the dog repository consults before hitting
// Postgres. A Get that finds nothing leaves the target untouched and returns
// nil; callers decide whether to fall through to the database.
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, data interface{}) error
	Delete(ctx context.Context, key string) error
}

// NewCache builds the dog-lookup cache from the configured redis instance.
func NewCache() (Cache, error) {
	cfg, err := config.Fetch()
	if err != nil {
		return nil, err
	}
	ca, err := newRedisCache([]string{fmt.Sprintf("redis://%s", cfg.Redis.Dns)})
	if err != nil {
		return nil, err
	}
	return ca, nil
}

type redisCache struct {
	cache *cache.Cache
}

func newRedisCache(addresses []string) (*redisCache, error) {
	client, err := redis_db.NewRedisClient(addresses)
	if err != nil {
		return nil, err
	}

	c := cache.New(&cache.Options{
		Redis:      client.Client(),
		LocalCache: cache.NewTinyLFU(localCacheSize, 1*time.Minute),
	})

	return &redisCache{cache: c}, nil
}

func (r *redisCache) Set(ctx context.Context, key string, data interface{}, ttl time.Duration) error {
	return r.cache.Set(&cache.Item{
		Ctx:   ctx,
		Key:   key,
		Value: data,
		TTL:   ttl,
	})
}

// Get treats a cache miss as a non-error so repository code reads as one
// lookup with a database fallback.
func (r *redisCache) Get(ctx context.Context, key string, data interface{}) error {
	err := r.cache.Get(ctx, key, &data)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil
	}
	return err
}

func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.cache.Delete(ctx, key)
}
