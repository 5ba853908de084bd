package di

import (
	"go.uber.org/fx"

	"github.com/cianorte/storefront/internal/adapter/gateway"
	"github.com/cianorte/storefront/internal/app"
	"github.com/cianorte/storefront/internal/config"
	"github.com/cianorte/storefront/internal/events"
	"github.com/cianorte/storefront/internal/logger"
	"github.com/cianorte/storefront/internal/pkg/auth"
	"github.com/cianorte/storefront/internal/server/http/handlers"
	"github.com/cianorte/storefront/internal/server/http/router"
	"github.com/cianorte/storefront/internal/storage/postgres"
	"github.com/cianorte/storefront/internal/storage/productcache"
	"github.com/cianorte/storefront/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		productcache.Module,
		gateway.Module,
		events.Module,
		usecase.Module,
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
