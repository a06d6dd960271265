package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/bfc/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Render produces bfc.hcl source describing m.
func Render(m *config.Model) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("cells", cty.NumberIntVal(int64(m.Cells)))
	body.SetAttributeValue("max_labels", cty.NumberIntVal(int64(m.LabelBound())))
	body.SetAttributeValue("allocator", cty.StringVal(string(m.Allocator)))
	body.SetAttributeValue("max_attempts", cty.NumberIntVal(int64(m.MaxAttempts)))
	if m.Seed != nil {
		body.SetAttributeValue("seed", cty.NumberUIntVal(*m.Seed))
	}
	body.SetAttributeValue("header", cty.BoolVal(m.Header))
	body.AppendNewline()

	out := body.AppendNewBlock("output", nil).Body()
	for _, attr := range []struct {
		name string
		tmpl *config.Template
	}{
		{"c_file", m.Output.CFile},
		{"binary", m.Output.Binary},
	} {
		if attr.tmpl == nil {
			continue
		}
		tokens, err := templateTokens(attr.tmpl.String())
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", attr.name, err)
		}
		out.SetAttributeRaw(attr.name, tokens)
	}
	body.AppendNewline()

	tc := body.AppendNewBlock("toolchain", nil).Body()
	tc.SetAttributeValue("enabled", cty.BoolVal(m.Toolchain.Enabled))
	tc.SetAttributeValue("compiler", cty.StringVal(m.Toolchain.Compiler))
	flags, err := gocty.ToCtyValue(m.Toolchain.Flags, cty.List(cty.String))
	if err != nil {
		return nil, fmt.Errorf("toolchain flags: %w", err)
	}
	tc.SetAttributeValue("flags", flags)

	return hclwrite.Format(f.Bytes()), nil
}

// templateTokens returns the tokens of a quoted template. text is already in
// template syntax, so it is placed between quotes as is rather than
// escaped like a plain string value.
func templateTokens(text string) (hclwrite.Tokens, error) {
	src := []byte("v = \"" + text + "\"\n")
	f, diags := hclwrite.ParseConfig(src, "<template>", hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}
	attr := f.Body().GetAttribute("v")
	if attr == nil {
		return nil, fmt.Errorf("cannot encode template %q", text)
	}
	return attr.Expr().BuildTokens(nil), nil
}
