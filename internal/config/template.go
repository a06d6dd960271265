// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Source describes one input program. Its fields are exposed to path
// templates as the `source` object.
type Source struct {
	Path string
	Dir  string
	Name string
	Stem string
}

// NewSource splits path into the parts templates can refer to.
func NewSource(path string) Source {
	name := filepath.Base(path)
	return Source{
		Path: path,
		Dir:  filepath.Dir(path),
		Name: name,
		Stem: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

func (s Source) value() cty.Value {
	return cty.ObjectVal(map[string]cty.Value{
		"path": cty.StringVal(s.Path),
		"dir":  cty.StringVal(s.Dir),
		"name": cty.StringVal(s.Name),
		"stem": cty.StringVal(s.Stem),
	})
}

// Functions returns the functions available in configuration expressions.
func Functions() map[string]function.Function {
	return map[string]function.Function{
		"concat":  stdlib.ConcatFunc,
		"format":  stdlib.FormatFunc,
		"join":    stdlib.JoinFunc,
		"lookup":  stdlib.LookupFunc,
		"lower":   stdlib.LowerFunc,
		"max":     stdlib.MaxFunc,
		"min":     stdlib.MinFunc,
		"replace": stdlib.ReplaceFunc,
		"upper":   stdlib.UpperFunc,
	}
}

// EvalContext builds the context configuration attributes are evaluated in.
// The process environment is available as the `env` map.
func EvalContext() *hcl.EvalContext {
	env := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			env[k] = cty.StringVal(v)
		}
	}
	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		envVal = cty.MapVal(env)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": envVal},
		Functions: Functions(),
	}
}

// Template is a string expression rendered once per source file.
type Template struct {
	expr hcl.Expression
	text string
}

// ParseTemplate parses text using HCL template syntax, e.g.
// "build/${source.stem}.c".
func ParseTemplate(text string) (*Template, error) {
	expr, diags := hclsyntax.ParseTemplate([]byte(text), "<template>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid template %q: %w", text, diags)
	}
	return &Template{expr: expr, text: text}, nil
}

// MustParseTemplate is ParseTemplate for constant templates.
func MustParseTemplate(text string) *Template {
	t, err := ParseTemplate(text)
	if err != nil {
		panic(err)
	}
	return t
}

// NewTemplate wraps an already parsed expression. text is its source form,
// used when the template is displayed or written back out.
func NewTemplate(expr hcl.Expression, text string) *Template {
	return &Template{expr: expr, text: text}
}

// Expression returns the underlying HCL expression.
func (t *Template) Expression() hcl.Expression { return t.expr }

func (t *Template) String() string { return t.text }

// Render evaluates the template for src.
func (t *Template) Render(src Source) (string, error) {
	ctx := EvalContext().NewChild()
	ctx.Variables = map[string]cty.Value{"source": src.value()}

	val, diags := t.expr.Value(ctx)
	if diags.HasErrors() {
		return "", fmt.Errorf("rendering %q: %w", t.text, diags)
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("rendering %q: %w", t.text, err)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("rendering %q: template produced no value", t.text)
	}
	out := val.AsString()
	if out == "" {
		return "", fmt.Errorf("rendering %q: template produced an empty path", t.text)
	}
	return out, nil
}

// Validate renders the template against a sample source so that bad
// references are reported when configuration is loaded.
func (t *Template) Validate() error {
	_, err := t.Render(NewSource("example/program.bf"))
	return err
}
