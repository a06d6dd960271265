package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/vk/bfc/internal/config"
	"github.com/vk/bfc/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	errW   io.Writer
	logger *slog.Logger
	config *Config
	build  *config.Model

	mu      sync.Mutex
	results []Result
}

// NewApp is the constructor for the main application. Logs and the native
// compiler's diagnostics go to errW; the compiler's standard output goes
// to outW.
func NewApp(outW, errW io.Writer, appConfig *Config) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	build, err := loadBuildConfig(ctx, appConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Debug("Build configuration resolved.",
		"cells", build.Cells,
		"label_bound", build.LabelBound(),
		"allocator", build.Allocator,
		"toolchain", build.Toolchain.Enabled,
	)

	return &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		config: appConfig,
		build:  build,
	}, nil
}

// Build returns the resolved build configuration. This is primarily for testing.
func (a *App) Build() *config.Model {
	return a.build
}

// Results returns the outcome of every source compiled by Run, in
// completion order.
func (a *App) Results() []Result {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Result(nil), a.results...)
}

func (a *App) record(r Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.results = append(a.results, r)
}
