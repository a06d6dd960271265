package yamlconfig

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/bfc/internal/config"
	"github.com/vk/bfc/internal/ctxlog"
	"github.com/vk/bfc/internal/label"
	"gopkg.in/yaml.v3"
)

// Loader reads YAML configuration files.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// document mirrors a bfc.yaml file. Pointer fields distinguish a missing
// key from a zero value.
type document struct {
	Cells       *int       `yaml:"cells"`
	MaxLabels   *int       `yaml:"max_labels"`
	Allocator   *string    `yaml:"allocator"`
	MaxAttempts *int       `yaml:"max_attempts"`
	Seed        *uint64    `yaml:"seed"`
	Header      *bool      `yaml:"header"`
	Output      *output    `yaml:"output"`
	Toolchain   *toolchain `yaml:"toolchain"`
}

type output struct {
	CFile  *string `yaml:"c_file"`
	Binary *string `yaml:"binary"`
}

type toolchain struct {
	Enabled  *bool    `yaml:"enabled"`
	Compiler *string  `yaml:"compiler"`
	Flags    []string `yaml:"flags"`
}

// Load parses the file at path and overlays its settings on base.
func (l *Loader) Load(ctx context.Context, path string, base *config.Model) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}

	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", path, err)
	}

	m, err := doc.apply(base.Clone())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	logger.Debug("YAML loading complete.", "cells", m.Cells, "allocator", m.Allocator, "toolchain", m.Toolchain.Enabled)
	return m, nil
}

func (d *document) apply(m *config.Model) (*config.Model, error) {
	if d.Cells != nil {
		m.Cells = *d.Cells
	}
	if d.MaxLabels != nil {
		m.MaxLabels = *d.MaxLabels
	}
	if d.Allocator != nil {
		k, err := label.ParseKind(*d.Allocator)
		if err != nil {
			return nil, err
		}
		m.Allocator = k
	}
	if d.MaxAttempts != nil {
		m.MaxAttempts = *d.MaxAttempts
	}
	if d.Seed != nil {
		seed := *d.Seed
		m.Seed = &seed
	}
	if d.Header != nil {
		m.Header = *d.Header
	}

	if d.Output != nil {
		if d.Output.CFile != nil {
			t, err := parseTemplate("c_file", *d.Output.CFile)
			if err != nil {
				return nil, err
			}
			m.Output.CFile = t
		}
		if d.Output.Binary != nil {
			t, err := parseTemplate("binary", *d.Output.Binary)
			if err != nil {
				return nil, err
			}
			m.Output.Binary = t
		}
	}

	if tc := d.Toolchain; tc != nil {
		if tc.Enabled != nil {
			m.Toolchain.Enabled = *tc.Enabled
		}
		if tc.Compiler != nil {
			m.Toolchain.Compiler = *tc.Compiler
		}
		if tc.Flags != nil {
			m.Toolchain.Flags = tc.Flags
		}
	}
	return m, nil
}

func parseTemplate(name, text string) (*config.Template, error) {
	t, err := config.ParseTemplate(text)
	if err != nil {
		return nil, fmt.Errorf("output %s: %w", name, err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("output %s: %w", name, err)
	}
	return t, nil
}
