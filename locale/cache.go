package locale

import (
	"context"
	"sync"
	"time"

	"github.com/kbukum/speechkit/redis"
)

// Cache holds the catalogue between refreshes.
type Cache interface {
	// Load returns the cached catalogue, or ok=false when absent or expired.
	Load(ctx context.Context) (locales []Info, ok bool, err error)
	Save(ctx context.Context, locales []Info, ttl time.Duration) error
}

type memoryCache struct {
	mu      sync.RWMutex
	locales []Info
	expires time.Time
	now     func() time.Time
}

// NewMemoryCache keeps the catalogue in process.
func NewMemoryCache() Cache {
	return &memoryCache{now: time.Now}
}

func (c *memoryCache) Load(context.Context) ([]Info, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.locales == nil || !c.now().Before(c.expires) {
		return nil, false, nil
	}
	return append([]Info(nil), c.locales...), true, nil
}

func (c *memoryCache) Save(_ context.Context, locales []Info, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.locales = append([]Info(nil), locales...)
	c.expires = c.now().Add(ttl)
	return nil
}

const redisKey = "catalogue"

type redisCache struct {
	store *redis.TypedStore[[]Info]
}

// NewRedisCache shares the catalogue between service instances. Expiry is
// left to redis.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{store: redis.NewTypedStore[[]Info](client, "locales")}
}

func (c *redisCache) Load(ctx context.Context) ([]Info, bool, error) {
	v, err := c.store.Load(ctx, redisKey)
	if err != nil || v == nil {
		return nil, false, err
	}
	return *v, true, nil
}

func (c *redisCache) Save(ctx context.Context, locales []Info, ttl time.Duration) error {
	return c.store.Save(ctx, redisKey, &locales, ttl)
}
