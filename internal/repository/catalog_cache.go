package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	productKeyPrefix = "catalog:product:"
	productListKey   = "catalog:products"
)

// CatalogCache is a best-effort cache of serialized catalog payloads. A
// degraded or unreachable Redis reads as a miss and writes are dropped.
type CatalogCache interface {
	GetProduct(ctx context.Context, slug string) ([]byte, bool)
	SetProduct(ctx context.Context, slug string, payload []byte)
	GetProductList(ctx context.Context) ([]byte, bool)
	SetProductList(ctx context.Context, payload []byte)
	Invalidate(ctx context.Context, slug string)
}

type redisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache builds a Redis-backed cache.
func NewCatalogCache(client *redis.Client, ttl time.Duration) CatalogCache {
	return &redisCatalogCache{client: client, ttl: ttl}
}

func (c *redisCatalogCache) GetProduct(ctx context.Context, slug string) ([]byte, bool) {
	return c.get(ctx, productKeyPrefix+slug)
}

func (c *redisCatalogCache) SetProduct(ctx context.Context, slug string, payload []byte) {
	c.set(ctx, productKeyPrefix+slug, payload)
}

func (c *redisCatalogCache) GetProductList(ctx context.Context) ([]byte, bool) {
	return c.get(ctx, productListKey)
}

func (c *redisCatalogCache) SetProductList(ctx context.Context, payload []byte) {
	c.set(ctx, productListKey, payload)
}

// Invalidate drops both the product entry and the listing; any product write
// can change what the public catalog shows.
func (c *redisCatalogCache) Invalidate(ctx context.Context, slug string) {
	if c.client == nil {
		return
	}
	_ = c.client.Del(ctx, productKeyPrefix+slug, productListKey).Err()
}

func (c *redisCatalogCache) get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (c *redisCatalogCache) set(ctx context.Context, key string, payload []byte) {
	if c.client == nil {
		return
	}
	_ = c.client.Set(ctx, key, payload, c.ttl).Err()
}
