package realtime

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/thermopolio/thermopolio/internal/config"
)

// Module provides the notification hub.
var Module = fx.Options(
	fx.Provide(newHub),
	fx.Invoke(registerLifecycle),
)

func newHub(cfg *config.Config, logger *slog.Logger) *Hub {
	return NewHub(Options{AllowedOrigins: cfg.CORSOrigins}, logger)
}

func registerLifecycle(lc fx.Lifecycle, hub *Hub) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			hub.Close()
			return nil
		},
	})
}
