package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/harnessgo/internal/builtin"
	"github.com/vk/harnessgo/internal/ctxlog"
	"github.com/vk/harnessgo/internal/manifest"
	"github.com/vk/harnessgo/internal/trait"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *trait.Registry
	index     *manifest.Index
	collector *trait.Collector
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and trait registry.
// A failure to load the manifests is a fatal startup error and panics; main
// recovers and reports it.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	registry := trait.NewRegistry()
	builtin.Register(registry)
	logger.Debug("Built-in trait types registered.", "traits", len(registry.TraitNames()))

	a := &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		registry: registry,
	}

	if cfg.ManifestPath != "" {
		ix, err := manifest.Load(ctx, cfg.ManifestPath)
		if err != nil {
			panic(fmt.Errorf("failed to load manifests: %w", err))
		}
		err = ix.ValidateTraitTypes(func(name string) bool {
			_, ok := registry.Lookup(name)
			return ok
		})
		if err != nil {
			panic(fmt.Errorf("invalid manifest: %w", err))
		}
		a.index = ix
		a.collector = trait.NewCollector(registry, ix)
		logger.Debug("Manifest index loaded and collector wired.")
	}

	return a
}

// Registry returns the application's trait registry. Primarily for testing.
func (a *App) Registry() *trait.Registry { return a.registry }

// Collector returns the application's trait collector, or nil when no
// manifests were loaded. Primarily for testing.
func (a *App) Collector() *trait.Collector { return a.collector }
