package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/eqgen/internal/ctxlog"
	"github.com/specialistvlad/eqgen/internal/model"
	"github.com/specialistvlad/eqgen/internal/profile"
)

// Loader is the interface for a format-specific model loader.
type Loader interface {
	// Load reads every model file under paths into one validated model.
	Load(ctx context.Context, paths ...string) (*model.Model, error)
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	loader   Loader
	profiles *profile.Registry
}

// NewApp is the constructor for the main application. It configures an
// isolated logger and a profile registry holding the built-in profiles plus
// those found under Config.ProfilePaths.
func NewApp(outW io.Writer, cfg *Config, loader Loader) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	profiles := profile.NewRegistry()
	if len(cfg.ProfilePaths) > 0 {
		if err := profiles.LoadFiles(ctx, cfg.ProfilePaths...); err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
	}
	if _, err := profiles.Get(cfg.Profile); err != nil {
		return nil, err
	}
	logger.Debug("Profile registry ready.", "profiles", profiles.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		loader:   loader,
		profiles: profiles,
	}, nil
}

// Profiles returns the application's profile registry. This is primarily for testing.
func (a *App) Profiles() *profile.Registry {
	return a.profiles
}
