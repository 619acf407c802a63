package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/adapterhub/internal/ctxlog"
	"github.com/vk/adapterhub/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
// Adapter discovery runs here, once; a declaration conflict is a programmer
// error and panics, keeping the process from starting on an ambiguous
// registry.
func NewApp(outW io.Writer, appConfig *Config, providers ...registry.Provider) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(providers) == 0 {
		providers = coreProviders
	}
	if err := reg.Discover(ctx, providers...); err != nil {
		panic(fmt.Errorf("adapter discovery failed: %w", err))
	}
	logger.Debug("All provider modules discovered.", "providers", len(providers))

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
