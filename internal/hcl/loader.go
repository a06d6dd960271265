package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/bfc/internal/config"
	"github.com/vk/bfc/internal/ctxlog"
	"github.com/vk/bfc/internal/label"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// fileRoot mirrors the top level of a bfc.hcl file. Attributes are kept as
// expressions so they can be evaluated with functions and `env`.
type fileRoot struct {
	Cells       hcl.Expression  `hcl:"cells,optional"`
	MaxLabels   hcl.Expression  `hcl:"max_labels,optional"`
	Allocator   hcl.Expression  `hcl:"allocator,optional"`
	MaxAttempts hcl.Expression  `hcl:"max_attempts,optional"`
	Seed        hcl.Expression  `hcl:"seed,optional"`
	Header      hcl.Expression  `hcl:"header,optional"`
	Output      *outputBlock    `hcl:"output,block"`
	Toolchain   *toolchainBlock `hcl:"toolchain,block"`
}

type outputBlock struct {
	CFile  hcl.Expression `hcl:"c_file,optional"`
	Binary hcl.Expression `hcl:"binary,optional"`
}

type toolchainBlock struct {
	Enabled  hcl.Expression `hcl:"enabled,optional"`
	Compiler hcl.Expression `hcl:"compiler,optional"`
	Flags    hcl.Expression `hcl:"flags,optional"`
}

// Load parses the file at path and overlays its settings on base.
func (l *Loader) Load(ctx context.Context, path string, base *config.Model) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model, err := l.apply(ctx, &root, file.Bytes, base.Clone())
	if err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	logger.Debug("HCL loading complete.", "cells", model.Cells, "allocator", model.Allocator, "toolchain", model.Toolchain.Enabled)
	return model, nil
}

// apply evaluates every attribute present in root and writes it into m.
func (l *Loader) apply(ctx context.Context, root *fileRoot, src []byte, m *config.Model) (*config.Model, error) {
	evalCtx := config.EvalContext()

	if _, err := decodeExpr(ctx, root.Cells, evalCtx, "cells", &m.Cells); err != nil {
		return nil, err
	}
	if _, err := decodeExpr(ctx, root.MaxLabels, evalCtx, "max_labels", &m.MaxLabels); err != nil {
		return nil, err
	}
	var kind string
	if ok, err := decodeExpr(ctx, root.Allocator, evalCtx, "allocator", &kind); err != nil {
		return nil, err
	} else if ok {
		k, err := label.ParseKind(kind)
		if err != nil {
			return nil, attrError(root.Allocator, "allocator", err.Error())
		}
		m.Allocator = k
	}
	if _, err := decodeExpr(ctx, root.MaxAttempts, evalCtx, "max_attempts", &m.MaxAttempts); err != nil {
		return nil, err
	}
	var seed uint64
	if ok, err := decodeExpr(ctx, root.Seed, evalCtx, "seed", &seed); err != nil {
		return nil, err
	} else if ok {
		m.Seed = &seed
	}
	if _, err := decodeExpr(ctx, root.Header, evalCtx, "header", &m.Header); err != nil {
		return nil, err
	}

	if out := root.Output; out != nil {
		if t, err := templateAttr(out.CFile, src, "c_file"); err != nil {
			return nil, err
		} else if t != nil {
			m.Output.CFile = t
		}
		if t, err := templateAttr(out.Binary, src, "binary"); err != nil {
			return nil, err
		} else if t != nil {
			m.Output.Binary = t
		}
	}

	if tc := root.Toolchain; tc != nil {
		if _, err := decodeExpr(ctx, tc.Enabled, evalCtx, "enabled", &m.Toolchain.Enabled); err != nil {
			return nil, err
		}
		if _, err := decodeExpr(ctx, tc.Compiler, evalCtx, "compiler", &m.Toolchain.Compiler); err != nil {
			return nil, err
		}
		var flags []string
		if ok, err := decodeExpr(ctx, tc.Flags, evalCtx, "flags", &flags); err != nil {
			return nil, err
		} else if ok {
			m.Toolchain.Flags = flags
		}
	}

	return m, nil
}

// templateAttr wraps a path expression that is rendered later, once per
// source. It returns nil when the attribute is absent.
func templateAttr(expr hcl.Expression, src []byte, name string) (*config.Template, error) {
	if isAbsent(expr) {
		return nil, nil
	}
	text := templateText(expr, expr.Range().SliceBytes(src))
	t := config.NewTemplate(expr, text)
	if err := t.Validate(); err != nil {
		return nil, attrError(expr, name, err.Error())
	}
	return t, nil
}

// templateText returns the template-syntax form of an expression's source:
// a quoted template loses its quotes, any other expression is wrapped in
// an interpolation.
func templateText(expr hcl.Expression, src []byte) string {
	switch expr.(type) {
	case *hclsyntax.TemplateExpr, *hclsyntax.TemplateWrapExpr:
		if len(src) >= 2 && src[0] == '"' && src[len(src)-1] == '"' {
			return string(src[1 : len(src)-1])
		}
	}
	return "${" + string(src) + "}"
}
