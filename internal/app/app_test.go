package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/thermopolio/thermopolio/internal/config"
	"github.com/thermopolio/thermopolio/internal/domain/model"
	testhelpers "github.com/thermopolio/thermopolio/internal/test"
	"github.com/thermopolio/thermopolio/internal/worker"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type sinkFunc func(context.Context, model.Notification) error

func (f sinkFunc) Deliver(ctx context.Context, n model.Notification) error { return f(ctx, n) }

type seederStub struct {
	calls int
	err   error
}

func (s *seederStub) SeedDemoUsers(context.Context) (int, error) {
	s.calls++
	return 3, s.err
}

func newTestDispatcher() *worker.NotificationDispatcher {
	return worker.NewNotificationDispatcher(sinkFunc(func(context.Context, model.Notification) error { return nil }), 1, 1, discardLogger())
}

func TestNewHTTPServer(t *testing.T) {
	cfg := &config.Config{RunAddress: ":9999"}
	router := gin.New()
	server := newHTTPServer(serverParams{Config: cfg, Router: router})
	if server.Addr != ":9999" {
		t.Fatalf("expected address :9999, got %q", server.Addr)
	}
	if server.Handler != router {
		t.Fatalf("expected handler to be router without CORS origins")
	}
	if server.ReadHeaderTimeout != readHeaderTimeout {
		t.Fatalf("expected read header timeout to be set")
	}
}

func TestNewHTTPServerAppliesCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/restaurants", func(c *gin.Context) { c.Status(http.StatusOK) })
	server := newHTTPServer(serverParams{
		Config: &config.Config{RunAddress: ":0", CORSOrigins: []string{"https://app.thermopolio.it"}},
		Router: router,
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/restaurants", nil)
	req.Header.Set("Origin", "https://app.thermopolio.it")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://app.thermopolio.it" {
		t.Fatalf("expected allowed origin echo, got %q", got)
	}
	if resp.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials to be allowed")
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/restaurants", nil)
	req.Header.Set("Origin", "https://evil.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	resp = httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected foreign origin to be rejected, got %q", got)
	}
}

func TestNewNotificationDispatcherUsesConfig(t *testing.T) {
	d := newNotificationDispatcher(dispatcherParams{
		Config: &config.Config{NotifyWorkers: 2, NotifyQueue: 8},
		Logger: discardLogger(),
	})
	if d == nil {
		t.Fatal("expected dispatcher instance")
	}
}

func TestRegisterLifecycleStartStop(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	server := &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()}
	seeder := &seederStub{}
	cfg := &config.Config{ShutdownTimeout: 100 * time.Millisecond, SeedDemo: true}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     server,
		Dispatcher: newTestDispatcher(),
		Seeder:     seeder,
		Config:     cfg,
	})

	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected one hook registered, got %d", len(recorder.Hooks))
	}

	hook := recorder.Hooks[0]
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := hook.OnStart(ctx); err != nil {
		t.Fatalf("on start failed: %v", err)
	}
	if seeder.calls != 1 {
		t.Fatalf("expected demo seeding on start, got %d calls", seeder.calls)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hook.OnStop(context.Background())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected on stop to finish")
	}
}

func TestRegisterLifecycleSeedFailureIsNotFatal(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	seeder := &seederStub{err: errors.New("db down")}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: &testhelpers.ShutdownerStub{},
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		Dispatcher: newTestDispatcher(),
		Seeder:     seeder,
		Config:     &config.Config{ShutdownTimeout: time.Second, SeedDemo: true},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("expected seeding failure to be logged only, got %v", err)
	}
	_ = hook.OnStop(context.Background())
}

func TestRegisterLifecycleShutdownOnServerError(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	shutdowner := &testhelpers.ShutdownerStub{Called: make(chan struct{}, 1)}
	seeder := &seederStub{}

	registerLifecycle(lifecycleParams{
		Lifecycle:  recorder,
		Shutdowner: shutdowner,
		Logger:     discardLogger(),
		Server:     &http.Server{Addr: "bad addr"},
		Dispatcher: newTestDispatcher(),
		Seeder:     seeder,
		Config:     &config.Config{ShutdownTimeout: time.Second},
	})

	hook := recorder.Hooks[0]
	if err := hook.OnStart(context.Background()); err != nil {
		t.Fatalf("on start returned error: %v", err)
	}
	if seeder.calls != 0 {
		t.Fatal("seeding must be skipped when disabled")
	}

	select {
	case <-shutdowner.Called:
	case <-time.After(time.Second):
		t.Fatal("expected shutdown to be triggered on server error")
	}

	_ = hook.OnStop(context.Background())
}

func TestLifecycleRecorderAppend(t *testing.T) {
	recorder := &testhelpers.LifecycleRecorder{}
	recorder.Append(fx.Hook{})
	if len(recorder.Hooks) != 1 {
		t.Fatalf("expected hook to be appended")
	}
}
