// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/bfc/internal/label"
	"github.com/vk/bfc/internal/translator"
)

const (
	// DefaultCells is the length of the cell array in generated programs.
	DefaultCells = translator.DefaultCells
	// LabelsPerCell scales the default label bound from the cell count.
	LabelsPerCell = 10
	// DefaultCompiler is the native compiler invoked on the generated C.
	DefaultCompiler = "gcc"
)

// DefaultFlags are passed to the native compiler ahead of the input file.
var DefaultFlags = []string{"-Wall", "-Wextra", "-Wpedantic", "-Werror", "-O3", "-fsanitize=undefined"}

// Model is the unified build configuration.
type Model struct {
	Cells int
	// MaxLabels bounds the label identifier space. Zero means
	// LabelsPerCell * Cells.
	MaxLabels   int
	Allocator   label.Kind
	MaxAttempts int
	Seed        *uint64
	// Header writes the native compile command as a comment at the top of
	// each generated file.
	Header    bool
	Output    Output
	Toolchain Toolchain
}

// Output names the generated files for a source.
type Output struct {
	CFile  *Template
	Binary *Template
}

// Toolchain describes the native compiler step.
type Toolchain struct {
	Enabled  bool
	Compiler string
	Flags    []string
}

// Default returns the built-in configuration: generated files are named
// after the source stem in the working directory.
func Default() *Model {
	return &Model{
		Cells:       DefaultCells,
		Allocator:   label.KindCounter,
		MaxAttempts: label.DefaultMaxAttempts,
		Header:      true,
		Output: Output{
			CFile:  MustParseTemplate("${source.stem}.c"),
			Binary: MustParseTemplate("${source.stem}"),
		},
		Toolchain: Toolchain{
			Enabled:  true,
			Compiler: DefaultCompiler,
			Flags:    slices.Clone(DefaultFlags),
		},
	}
}

// Clone returns a deep copy of m.
func (m *Model) Clone() *Model {
	c := *m
	if m.Seed != nil {
		seed := *m.Seed
		c.Seed = &seed
	}
	c.Toolchain.Flags = slices.Clone(m.Toolchain.Flags)
	return &c
}

// LabelBound returns the effective size of the label identifier space.
func (m *Model) LabelBound() int {
	if m.MaxLabels > 0 {
		return m.MaxLabels
	}
	return LabelsPerCell * m.Cells
}

// LabelOptions converts the allocator settings for label.New.
func (m *Model) LabelOptions() label.Options {
	return label.Options{
		Kind:        m.Allocator,
		Bound:       m.LabelBound(),
		MaxAttempts: m.MaxAttempts,
		Seed:        m.Seed,
	}
}

// CompileCommand renders the native compiler invocation for display.
func (m *Model) CompileCommand(cFile, binary string) []string {
	args := []string{m.Toolchain.Compiler}
	args = append(args, m.Toolchain.Flags...)
	return append(args, cFile, "-o", binary)
}

// Validate checks the model for settings no pipeline could run with.
func (m *Model) Validate() error {
	var errs []error
	if m.Cells <= 0 {
		errs = append(errs, fmt.Errorf("cells must be positive, got %d", m.Cells))
	}
	if m.MaxLabels < 0 {
		errs = append(errs, fmt.Errorf("max_labels must not be negative, got %d", m.MaxLabels))
	}
	if _, err := label.ParseKind(string(m.Allocator)); err != nil {
		errs = append(errs, err)
	}
	if m.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("max_attempts must be positive, got %d", m.MaxAttempts))
	}
	if m.Output.CFile == nil {
		errs = append(errs, errors.New("output c_file template is required"))
	}
	if m.Toolchain.Enabled {
		if strings.TrimSpace(m.Toolchain.Compiler) == "" {
			errs = append(errs, errors.New("toolchain compiler is required when the toolchain is enabled"))
		}
		if m.Output.Binary == nil {
			errs = append(errs, errors.New("output binary template is required when the toolchain is enabled"))
		}
	}
	return errors.Join(errs...)
}
