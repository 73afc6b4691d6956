package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires slog and zap loggers for dependency injection and routes fx events through zap.
var Module = fx.Options(
	fx.Provide(New, NewZap),
	fx.WithLogger(FxLogger),
	fx.Invoke(registerLifecycle),
)

func registerLifecycle(lc fx.Lifecycle, l *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = l.Sync()
			return nil
		},
	})
}
