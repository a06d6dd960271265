package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/bfc/internal/config"
	"github.com/vk/bfc/internal/ctxlog"
	"github.com/vk/bfc/internal/hcl"
	"github.com/vk/bfc/internal/label"
	"github.com/vk/bfc/internal/yamlconfig"
)

// loaderFor picks the configuration loader by file extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hcl.NewLoader(), nil
	case ".yaml", ".yml":
		return yamlconfig.NewLoader(), nil
	default:
		return nil, fmt.Errorf("unsupported configuration format %q: use .hcl, .yaml or .yml", filepath.Ext(path))
	}
}

// loadBuildConfig layers defaults, the configuration file and command-line
// overrides, in that order.
func loadBuildConfig(ctx context.Context, cfg *Config) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	build := config.Default()

	if cfg.ConfigPath != "" {
		loader, err := loaderFor(cfg.ConfigPath)
		if err != nil {
			return nil, err
		}
		build, err = loader.Load(ctx, cfg.ConfigPath, build)
		if err != nil {
			return nil, err
		}
		logger.Debug("Configuration file loaded.", "path", cfg.ConfigPath)
	}

	if cfg.Cells > 0 {
		build.Cells = cfg.Cells
	}
	if cfg.MaxLabels > 0 {
		build.MaxLabels = cfg.MaxLabels
	}
	if cfg.Allocator != "" {
		build.Allocator = label.Kind(cfg.Allocator)
	}
	if cfg.Compiler != "" {
		build.Toolchain.Compiler = cfg.Compiler
	}
	if cfg.EmitOnly {
		build.Toolchain.Enabled = false
	}

	if err := build.Validate(); err != nil {
		return nil, fmt.Errorf("invalid build configuration: %w", err)
	}
	return build, nil
}
