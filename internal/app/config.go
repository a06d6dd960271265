package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vk/bfc/internal/label"
)

// Config holds all the necessary configuration for an App instance to run.
// Zero values mean "not set on the command line".
type Config struct {
	Sources    []string // source files or directories
	ConfigPath string   // bfc.hcl / bfc.yaml
	InitConfig string   // write a default config here and stop

	CFile    string // generated C path, single source only
	Binary   string // executable path, single source only
	EmitOnly bool

	Compiler  string
	Cells     int
	MaxLabels int
	Allocator string

	LogFormat string
	LogLevel  string
	Workers   int
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	var errs []error

	if cfg.InitConfig == "" && len(cfg.Sources) == 0 {
		errs = append(errs, errors.New("at least one source path is required"))
	}
	if (cfg.CFile != "" || cfg.Binary != "") && len(cfg.Sources) != 1 {
		errs = append(errs, errors.New("output paths can only be set when compiling a single source"))
	}
	if cfg.Cells < 0 {
		errs = append(errs, fmt.Errorf("cells must be positive, got %d", cfg.Cells))
	}
	if cfg.MaxLabels < 0 {
		errs = append(errs, fmt.Errorf("max-labels must be positive, got %d", cfg.MaxLabels))
	}
	if cfg.Allocator != "" {
		if _, err := label.ParseKind(cfg.Allocator); err != nil {
			errs = append(errs, err)
		}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
