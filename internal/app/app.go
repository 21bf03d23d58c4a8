package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/critpathgo/internal/config"
	"github.com/vk/critpathgo/internal/ctxlog"
	"github.com/vk/critpathgo/internal/solver"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW          io.Writer
	logger        *slog.Logger
	model         *config.Model
	solverFactory solver.Factory
}

// New is the constructor for the main application. It loads the project
// definition eagerly; a failure to load is a fatal startup error. The
// solver factory may be nil, in which case only the CPM analysis is
// available.
func New(outW io.Writer, appConfig *Config, loader config.Loader, factory solver.Factory) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfgModel, err := loader.Load(ctx, appConfig.ProjectPath)
	if err != nil {
		// A failure to load the project definition is a fatal startup error.
		panic(fmt.Errorf("failed to load project definition: %w", err))
	}
	logger.Debug("Project definition loaded.", "activities", len(cfgModel.Activities))

	return &App{
		outW:          outW,
		logger:        logger,
		model:         cfgModel,
		solverFactory: factory,
	}
}

// Model returns the loaded project definition. This is primarily for
// testing.
func (a *App) Model() *config.Model {
	return a.model
}
