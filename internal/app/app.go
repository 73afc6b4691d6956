package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"go.uber.org/fx"

	"github.com/thermopolio/thermopolio/internal/config"
	"github.com/thermopolio/thermopolio/internal/realtime"
	"github.com/thermopolio/thermopolio/internal/server/http/handlers"
	"github.com/thermopolio/thermopolio/internal/storage/postgres"
	"github.com/thermopolio/thermopolio/internal/storage/redis"
	"github.com/thermopolio/thermopolio/internal/usecase"
	"github.com/thermopolio/thermopolio/internal/worker"
)

const readHeaderTimeout = 10 * time.Second

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newMarketplaceFacade,
		func(f *MarketplaceFacade) handlers.MarketplaceFacade { return f },
		newNotificationPusher,
		func(p *notificationPusher) usecase.Pusher { return p },
		newNotificationDispatcher,
		func(d *worker.NotificationDispatcher) usecase.Notifier { return d },
		func(a *usecase.AuthUseCase) DemoSeeder { return a },
		newHTTPServer,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth          *usecase.AuthUseCase
	Restaurants   *usecase.RestaurantUseCase
	Plans         *usecase.PlanUseCase
	PickupPoints  *usecase.PickupPointUseCase
	Orders        *usecase.OrderUseCase
	Donations     *usecase.DonationUseCase
	Reviews       *usecase.ReviewUseCase
	Notifications *usecase.NotificationUseCase
	Bot           *usecase.BotUseCase
	Hub           *realtime.Hub
	Storage       *postgres.Storage
	Sessions      *redis.SessionStore
}

func newMarketplaceFacade(p facadeParams) *MarketplaceFacade {
	return NewMarketplaceFacade(Services{
		Auth:          p.Auth,
		Restaurants:   p.Restaurants,
		Plans:         p.Plans,
		PickupPoints:  p.PickupPoints,
		Orders:        p.Orders,
		Donations:     p.Donations,
		Reviews:       p.Reviews,
		Notifications: p.Notifications,
		Bot:           p.Bot,
	}, p.Hub, map[string]HealthChecker{
		"postgres": p.Storage,
		"redis":    p.Sessions,
	})
}

type dispatcherParams struct {
	fx.In

	Notifications *usecase.NotificationUseCase
	Config        *config.Config
	Logger        *slog.Logger
}

func newNotificationDispatcher(p dispatcherParams) *worker.NotificationDispatcher {
	return worker.NewNotificationDispatcher(p.Notifications, p.Config.NotifyWorkers, p.Config.NotifyQueue, p.Logger)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	var handler http.Handler = p.Router
	if len(p.Config.CORSOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   p.Config.CORSOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Content-Encoding", "Accept-Encoding"},
			AllowCredentials: true,
		}).Handler(p.Router)
	}
	return &http.Server{
		Addr:              p.Config.RunAddress,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// DemoSeeder creates the demo accounts.
type DemoSeeder interface {
	SeedDemoUsers(ctx context.Context) (int, error)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.NotificationDispatcher
	Seeder     DemoSeeder
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting thermopolio", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(ctx)

			if p.Config.SeedDemo && p.Seeder != nil {
				created, err := p.Seeder.SeedDemoUsers(ctx)
				if err != nil {
					p.Logger.Warn("demo seeding failed", slog.String("error", err.Error()))
				} else {
					p.Logger.Info("demo accounts ready", slog.Int("created", created))
				}
			}

			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			err := p.Server.Shutdown(shutdownCtx)
			p.Dispatcher.Stop()
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			p.Logger.Info("thermopolio stopped")
			return nil
		},
	})
}
