package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/litgen/internal/config"
	"github.com/vk/litgen/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings config.Settings
}

// NewApp is the constructor for the main application. It configures an
// isolated logger and resolves the generator settings: built-in defaults,
// overlaid by the settings file when one is given or found next to the input
// path. A settings file that fails to load or validate is a fatal startup
// error and panics.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	settings := config.DefaultSettings()
	if path := settingsPath(appConfig); path != "" {
		loaded, err := loader.Load(ctx, path, settings)
		if err != nil {
			panic(fmt.Errorf("failed to load configuration: %w", err))
		}
		settings = *loaded
		logger.Debug("Settings file loaded.", "path", path)
	}
	if err := settings.Validate(); err != nil {
		panic(fmt.Errorf("invalid configuration: %w", err))
	}

	return &App{
		outW:     outW,
		logger:   logger,
		config:   appConfig,
		settings: settings,
	}
}

// Settings returns the resolved generator settings.
func (a *App) Settings() config.Settings {
	return a.settings
}

// settingsPath returns the explicit settings file, or litgen.hcl in the input
// directory if it exists, or "".
func settingsPath(cfg *Config) string {
	if cfg.ConfigPath != "" {
		return cfg.ConfigPath
	}
	dir := cfg.Path
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	candidate := filepath.Join(dir, config.DefaultFileName)
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}
