package productcache

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cianorte/storefront/internal/config"
)

// Module provides the catalog cache, a nop when Redis is not configured.
var Module = fx.Options(
	fx.Provide(newCache),
	fx.Invoke(registerLifecycle),
)

type cacheParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newCache(p cacheParams) Cache {
	if p.Config.RedisAddr == "" {
		return NopCache{}
	}
	return New(p.Config.RedisAddr, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, cache Cache) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if redisCache, ok := cache.(*RedisCache); ok {
				return redisCache.Close()
			}
			return nil
		},
	})
}
