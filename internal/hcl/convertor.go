package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/bfc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeExpr evaluates expr and stores the result in target, a pointer to a
// Go value. It reports false when the attribute was absent or null, leaving
// target untouched.
func decodeExpr(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext, name string, target any) (bool, error) {
	if expr == nil {
		return false, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return false, diags
	}
	if val.IsNull() {
		return false, nil
	}
	if !val.IsWhollyKnown() {
		return false, attrError(expr, name, "value must be known when the configuration is loaded")
	}
	if err := decode(ctx, val, target); err != nil {
		return false, attrError(expr, name, err.Error())
	}
	return true, nil
}

// decode converts a cty.Value to the type implied by the Go target and
// stores it.
func decode(ctx context.Context, val cty.Value, goVal any) error {
	logger := ctxlog.FromContext(ctx)
	valPtr := reflect.ValueOf(goVal)
	if valPtr.Kind() != reflect.Ptr {
		return fmt.Errorf("target for decoding must be a pointer, got %T", goVal)
	}

	impliedType, err := gocty.ImpliedType(valPtr.Elem().Interface())
	if err != nil {
		logger.Debug("Could not imply cty.Type from Go type, attempting direct decoding.", "go_type", valPtr.Elem().Type().String(), "error", err)
		return gocty.FromCtyValue(val, goVal)
	}

	convertedVal, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to required type %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}

	if !val.Type().Equals(convertedVal.Type()) {
		logger.Debug("Implicitly converted value type.",
			"from", val.Type().FriendlyName(),
			"to", convertedVal.Type().FriendlyName(),
		)
	}

	return gocty.FromCtyValue(convertedVal, goVal)
}

// isAbsent reports whether expr is the null placeholder gohcl substitutes
// for an optional attribute that was not written.
func isAbsent(expr hcl.Expression) bool {
	if expr == nil {
		return true
	}
	val, diags := expr.Value(nil)
	return !diags.HasErrors() && val.IsNull()
}

func attrError(expr hcl.Expression, name, detail string) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  fmt.Sprintf("Invalid value for %q", name),
		Detail:   detail,
		Subject:  expr.Range().Ptr(),
	}}
}
