package logger

import (
	"context"
	"log/slog"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/thermopolio/thermopolio/internal/config"
)

func TestModuleProvidesLogger(t *testing.T) {
	var (
		resolved *slog.Logger
		zl       *zap.Logger
	)
	app := fx.New(
		fx.Supply(&config.Config{LogLevel: "error"}),
		Module,
		fx.Populate(&resolved, &zl),
	)
	t.Cleanup(func() { _ = app.Stop(context.Background()) })
	if err := app.Err(); err != nil {
		t.Fatalf("fx app failed: %v", err)
	}
	if resolved == nil || zl == nil {
		t.Fatal("expected loggers to be populated")
	}
}
