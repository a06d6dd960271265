package app

import (
	"context"
	"fmt"

	"github.com/vk/bfc/internal/ctxlog"
	"github.com/vk/bfc/internal/fsutil"
	"github.com/vk/bfc/internal/hcl"
	"golang.org/x/sync/errgroup"
)

// SourceExtensions are the file suffixes collected from directory inputs.
var SourceExtensions = []string{".bf", ".b"}

// Run executes the main application logic. Output paths are resolved for
// every source first and must not collide. Sources are then compiled
// independently, at most Workers at a time; the first failure cancels the
// sources still waiting.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.InitConfig != "" {
		return a.writeConfig(ctx)
	}

	sources, err := fsutil.ExpandSources(a.config.Sources, SourceExtensions...)
	if err != nil {
		return fmt.Errorf("failed to resolve sources: %w", err)
	}
	jobs, err := a.planJobs(sources)
	if err != nil {
		return err
	}
	a.logger.Debug("Sources resolved.", "count", len(sources), "workers", a.config.Workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.config.Workers)
	for _, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := a.compileSource(gctx, j)
			if err != nil {
				return err
			}
			a.record(*res)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.logger.Info("🏁 Build finished.", "sources", len(sources))
	return nil
}

// writeConfig stores the resolved build configuration as HCL.
func (a *App) writeConfig(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	data, err := hcl.Render(a.build)
	if err != nil {
		return fmt.Errorf("failed to render configuration: %w", err)
	}
	if err := fsutil.WriteFileAtomic(a.config.InitConfig, data, 0o644); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	logger.Info("Configuration written.", "path", a.config.InitConfig)
	return nil
}
