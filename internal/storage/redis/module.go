package redis

import (
	"context"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/thermopolio/thermopolio/internal/config"
	"github.com/thermopolio/thermopolio/internal/domain/repository"
)

// Module wires the Redis client and the session store.
var Module = fx.Options(
	fx.Provide(
		newClient,
		NewSessionStore,
		func(s *SessionStore) repository.SessionRepository { return s },
	),
	fx.Invoke(registerLifecycle),
)

func newClient(cfg *config.Config) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

type lifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Client    *goredis.Client
	Store     *SessionStore
	Logger    *slog.Logger
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Store.HealthCheck(ctx); err != nil {
				p.Logger.Warn("redis unavailable at start", slog.String("error", err.Error()))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return p.Client.Close()
		},
	})
}
