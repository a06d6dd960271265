package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/bfc/internal/config"
	"github.com/vk/bfc/internal/ctxlog"
	"github.com/vk/bfc/internal/fsutil"
	"github.com/vk/bfc/internal/label"
	"github.com/vk/bfc/internal/toolchain"
	"github.com/vk/bfc/internal/translator"
)

// Result describes one compiled source.
type Result struct {
	Source string
	CFile  string
	Binary string // empty when the native compiler was not run
	Stats  translator.Stats
}

// job is one source with its resolved output paths.
type job struct {
	source string
	cFile  string
	binary string
}

// planJobs resolves the output paths of every source before anything is
// written. Two outputs landing on the same path, or an output landing on a
// source, is an error naming both parties.
func (a *App) planJobs(sources []string) ([]job, error) {
	inputs := make(map[string]bool, len(sources))
	for _, src := range sources {
		inputs[filepath.Clean(src)] = true
	}

	owners := make(map[string]string)
	claim := func(out, src string) error {
		key := filepath.Clean(out)
		if inputs[key] {
			return fmt.Errorf("output %s of %s would overwrite a source file", out, src)
		}
		if prev, ok := owners[key]; ok {
			if prev == src {
				return fmt.Errorf("%s: C file and executable are both %s", src, out)
			}
			return fmt.Errorf("output path collision: %s and %s both write %s", prev, src, out)
		}
		owners[key] = src
		return nil
	}

	jobs := make([]job, 0, len(sources))
	for _, src := range sources {
		cFile, binary, err := a.outputPaths(src)
		if err != nil {
			return nil, err
		}
		if err := claim(cFile, src); err != nil {
			return nil, err
		}
		if a.build.Toolchain.Enabled && binary != "" {
			if err := claim(binary, src); err != nil {
				return nil, err
			}
		}
		jobs = append(jobs, job{source: src, cFile: cFile, binary: binary})
	}
	return jobs, nil
}

// compileSource runs the whole pipeline for one file. Nothing is written
// unless translation succeeds, and the C file is written before the native
// compiler starts.
func (a *App) compileSource(ctx context.Context, j job) (*Result, error) {
	path, cFile, binary := j.source, j.cFile, j.binary
	ctx = ctxlog.With(ctx, "source", path)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compiling source.", "c_file", cFile, "binary", binary)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source: %w", err)
	}

	alloc, err := label.New(a.build.LabelOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to create label allocator: %w", err)
	}

	opts := translator.Options{Cells: a.build.Cells}
	if a.build.Header {
		opts.Header = strings.Join(a.build.CompileCommand(cFile, binary), " ")
	}

	tr := translator.New(alloc, opts)
	buf, err := tr.Translate(data)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	stats := tr.Stats()
	logger.Debug("Translation finished.", "symbols", stats.Symbols, "loops", stats.Loops, "max_depth", stats.MaxDepth, "lines", buf.Lines())

	if err := fsutil.WriteFileAtomic(cFile, []byte(buf.Finalize()), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write C output: %w", err)
	}

	res := &Result{Source: path, CFile: cFile, Stats: stats}
	if a.build.Toolchain.Enabled {
		cc := &toolchain.Compiler{
			Command: a.build.Toolchain.Compiler,
			Flags:   a.build.Toolchain.Flags,
			Stdout:  a.outW,
			Stderr:  a.errW,
		}
		if err := cc.Compile(ctx, cFile, binary); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res.Binary = binary
	}

	logger.Info("Compiled.", "c_file", cFile, "binary", res.Binary, "loops", stats.Loops)
	return res, nil
}

// outputPaths applies command-line overrides, falling back to the
// configured templates.
func (a *App) outputPaths(path string) (string, string, error) {
	src := config.NewSource(path)

	cFile := a.config.CFile
	if cFile == "" {
		var err error
		if cFile, err = a.build.Output.CFile.Render(src); err != nil {
			return "", "", fmt.Errorf("failed to name C output for %s: %w", path, err)
		}
	}

	binary := a.config.Binary
	if binary == "" && a.build.Output.Binary != nil {
		var err error
		if binary, err = a.build.Output.Binary.Render(src); err != nil {
			return "", "", fmt.Errorf("failed to name executable for %s: %w", path, err)
		}
	}
	return cFile, binary, nil
}
