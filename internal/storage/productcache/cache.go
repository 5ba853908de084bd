package productcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cianorte/storefront/internal/domain/model"
)

const (
	productKeyPrefix = "product:"
	categoriesKey    = "product:categories"
	defaultTTL       = 5 * time.Minute
)

// Cache is a read-through cache for single-product and category reads.
// Misses and Redis failures both fall back to the source of truth.
type Cache interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, bool)
	SetProduct(ctx context.Context, product *model.Product)
	GetCategories(ctx context.Context) ([]string, bool)
	SetCategories(ctx context.Context, categories []string)
	Invalidate(ctx context.Context, id int64)
}

// RedisCache implements Cache on top of go-redis.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New connects a Redis-backed cache.
func New(addr string, logger *slog.Logger) *RedisCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisCache{client: client, ttl: defaultTTL, logger: logger}
}

// Close releases the underlying connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetProduct(ctx context.Context, id int64) (*model.Product, bool) {
	raw, err := c.client.Get(ctx, productKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("product cache read failed", slog.String("error", err.Error()))
		}
		return nil, false
	}
	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, false
	}
	return &product, true
}

func (c *RedisCache) SetProduct(ctx context.Context, product *model.Product) {
	raw, err := json.Marshal(product)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, productKey(product.ID), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("product cache write failed", slog.String("error", err.Error()))
	}
}

func (c *RedisCache) GetCategories(ctx context.Context) ([]string, bool) {
	raw, err := c.client.Get(ctx, categoriesKey).Bytes()
	if err != nil {
		return nil, false
	}
	var categories []string
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (c *RedisCache) SetCategories(ctx context.Context, categories []string) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, categoriesKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("categories cache write failed", slog.String("error", err.Error()))
	}
}

// Invalidate drops the product entry and the category list, which may
// have changed with the product.
func (c *RedisCache) Invalidate(ctx context.Context, id int64) {
	if err := c.client.Del(ctx, productKey(id), categoriesKey).Err(); err != nil {
		c.logger.Warn("product cache invalidate failed", slog.String("error", err.Error()))
	}
}

func productKey(id int64) string {
	return fmt.Sprintf("%s%d", productKeyPrefix, id)
}

// NopCache disables caching when Redis is not configured.
type NopCache struct{}

func (NopCache) GetProduct(context.Context, int64) (*model.Product, bool) { return nil, false }
func (NopCache) SetProduct(context.Context, *model.Product)              {}
func (NopCache) GetCategories(context.Context) ([]string, bool)          { return nil, false }
func (NopCache) SetCategories(context.Context, []string)                 {}
func (NopCache) Invalidate(context.Context, int64)                       {}
