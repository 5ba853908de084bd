package events

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/cianorte/storefront/internal/config"
)

// Module provides the event publisher, a nop when Kafka is not configured.
var Module = fx.Options(
	fx.Provide(newPublisher),
	fx.Invoke(registerLifecycle),
)

type publisherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPublisher(p publisherParams) Publisher {
	if len(p.Config.KafkaBrokers) == 0 {
		return NopPublisher{}
	}
	return NewKafkaPublisher(p.Config.KafkaBrokers, p.Logger)
}

func registerLifecycle(lc fx.Lifecycle, publisher Publisher) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
}
