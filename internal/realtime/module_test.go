package realtime

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/thermopolio/thermopolio/internal/config"
)

func TestModuleProvidesHub(t *testing.T) {
	var hub *Hub
	app := fxtest.New(t,
		fx.Supply(&config.Config{CORSOrigins: []string{"http://localhost:3000"}}),
		fx.Supply(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		Module,
		fx.Populate(&hub),
	)
	app.RequireStart()
	if hub == nil {
		t.Fatal("expected hub to be provided")
	}
	app.RequireStop()
	if !hub.closed {
		t.Fatal("expected hub to be closed on stop")
	}
}

func TestRegisterLifecycleClosesHub(t *testing.T) {
	hub := NewHub(Options{}, slog.New(slog.NewJSONHandler(io.Discard, nil)))
	lc := fxtest.NewLifecycle(t)
	registerLifecycle(lc, hub)
	if err := lc.Start(context.Background()); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := lc.Stop(context.Background()); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	if !hub.closed {
		t.Fatal("expected hub to be closed")
	}
}
