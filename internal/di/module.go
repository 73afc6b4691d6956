package di

import (
	"go.uber.org/fx"

	"github.com/thermopolio/thermopolio/internal/app"
	"github.com/thermopolio/thermopolio/internal/config"
	"github.com/thermopolio/thermopolio/internal/logger"
	"github.com/thermopolio/thermopolio/internal/pkg/auth"
	"github.com/thermopolio/thermopolio/internal/realtime"
	"github.com/thermopolio/thermopolio/internal/server/http/router"
	"github.com/thermopolio/thermopolio/internal/storage/postgres"
	"github.com/thermopolio/thermopolio/internal/storage/redis"
	"github.com/thermopolio/thermopolio/internal/usecase"
)

// Module composes the whole application graph. Extra options are appended
// last, so fx.Replace or fx.Decorate can swap infrastructure in tests.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		redis.Module,
		realtime.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
