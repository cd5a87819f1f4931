package app

import (
	"io"
	"log/slog"

	"github.com/vk/codecreg/internal/codecctx"
	"github.com/vk/codecreg/internal/pathresolver"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	controller *codecctx.Controller
	config     *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and lifecycle
// controller; nothing is discovered until Run.
func NewApp(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	var resolverOpts []pathresolver.Option
	if cfg.CodecsPath != "" {
		resolverOpts = append(resolverOpts, pathresolver.WithExplicitBuiltinPath(cfg.CodecsPath))
	}
	if cfg.ClientCodecsPath != "" {
		resolverOpts = append(resolverOpts, pathresolver.WithExplicitClientPath(cfg.ClientCodecsPath))
	}

	controller := codecctx.NewController(
		codecctx.WithResolver(pathresolver.New(resolverOpts...)),
	)
	logger.Debug("Lifecycle controller constructed.")

	return &App{
		outW:       outW,
		logger:     logger,
		controller: controller,
		config:     cfg,
	}
}

// Controller returns the app's lifecycle controller. This is primarily for testing.
func (a *App) Controller() *codecctx.Controller {
	return a.controller
}
