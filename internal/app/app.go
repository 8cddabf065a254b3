package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/vk/prodgraph/internal/ctxlog"
	"github.com/vk/prodgraph/internal/preset"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	preset *preset.Preset
}

// NewApp loads and links the preset named by cfg. Logs go to logW; the
// report goes to outW unless cfg.OutPath is set.
func NewApp(outW, logW io.Writer, cfg *Config, loader preset.Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	defs, err := loader.Load(ctx, cfg.PresetPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load preset: %w", err)
	}
	p, err := preset.Build(ctx, filepath.Base(cfg.PresetPath), defs)
	if err != nil {
		return nil, err
	}
	logger.Debug("Preset ready.", "name", p.Name, "recipes", len(p.Recipes()), "assemblers", len(p.Assemblers()))

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		preset: p,
	}, nil
}

// Preset returns the linked preset. This is primarily for testing.
func (a *App) Preset() *preset.Preset {
	return a.preset
}
