package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/bfc/internal/label"
	"github.com/vk/bfc/internal/translator"
)

func TestNewSource(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Source{
		Path: "progs/hello.world.bf",
		Dir:  "progs",
		Name: "hello.world.bf",
		Stem: "hello.world",
	}, NewSource("progs/hello.world.bf"))
}

func TestTemplate_Render(t *testing.T) {
	t.Setenv("BFC_TEST_OUT", "/out")

	testCases := []struct {
		name    string
		text    string
		want    string
		wantErr bool
	}{
		{name: "stem", text: "${source.stem}.c", want: "hello.c"},
		{name: "sibling", text: "${source.dir}/${source.stem}", want: "progs/hello"},
		{name: "function", text: "${upper(source.stem)}.C", want: "HELLO.C"},
		{name: "env", text: "${env.BFC_TEST_OUT}/${source.name}.c", want: "/out/hello.bf.c"},
		{name: "literal", text: "a.out", want: "a.out"},
		{name: "unknown attribute", text: "${source.extension}", wantErr: true},
		{name: "empty result", text: "", wantErr: true},
	}

	src := NewSource("progs/hello.bf")
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tmpl, err := ParseTemplate(tc.text)
			require.NoError(t, err)

			got, err := tmpl.Render(src)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.text, tmpl.String())
		})
	}
}

func TestParseTemplate_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := ParseTemplate("${source.stem")
	require.Error(t, err)
	require.Panics(t, func() { MustParseTemplate("${") })
}

func TestDefault(t *testing.T) {
	t.Parallel()

	m := Default()
	require.NoError(t, m.Validate())
	assert.Equal(t, 300_000, m.Cells)
	assert.Equal(t, translator.DefaultCells, m.Cells, "generated skeleton and build model must agree")
	assert.Equal(t, 3_000_000, m.LabelBound())
	assert.Equal(t, label.KindCounter, m.Allocator)
	assert.Equal(t,
		[]string{"gcc", "-Wall", "-Wextra", "-Wpedantic", "-Werror", "-O3", "-fsanitize=undefined", "prog.c", "-o", "prog"},
		m.CompileCommand("prog.c", "prog"))
}

func TestModel_CloneIsDeep(t *testing.T) {
	t.Parallel()

	seed := uint64(3)
	m := Default()
	m.Seed = &seed

	c := m.Clone()
	c.Toolchain.Flags[0] = "-w"
	*c.Seed = 4

	assert.Equal(t, "-Wall", m.Toolchain.Flags[0])
	assert.Equal(t, uint64(3), *m.Seed)
}

func TestModel_Validate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		mutate func(m *Model)
		errMsg string
	}{
		{name: "zero cells", mutate: func(m *Model) { m.Cells = 0 }, errMsg: "cells must be positive"},
		{name: "negative labels", mutate: func(m *Model) { m.MaxLabels = -1 }, errMsg: "max_labels"},
		{name: "bad allocator", mutate: func(m *Model) { m.Allocator = "lfsr" }, errMsg: "unknown label allocator"},
		{name: "no attempts", mutate: func(m *Model) { m.MaxAttempts = 0 }, errMsg: "max_attempts"},
		{name: "no compiler", mutate: func(m *Model) { m.Toolchain.Compiler = " " }, errMsg: "compiler is required"},
		{name: "no binary", mutate: func(m *Model) { m.Output.Binary = nil }, errMsg: "binary template"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := Default()
			tc.mutate(m)
			require.ErrorContains(t, m.Validate(), tc.errMsg)
		})
	}

	t.Run("disabled toolchain needs no compiler", func(t *testing.T) {
		t.Parallel()
		m := Default()
		m.Toolchain.Enabled = false
		m.Toolchain.Compiler = ""
		m.Output.Binary = nil
		require.NoError(t, m.Validate())
	})
}

func TestModel_LabelOptions(t *testing.T) {
	t.Parallel()

	m := Default()
	m.Cells = 10
	m.Allocator = label.KindRandom
	opts := m.LabelOptions()
	assert.Equal(t, 100, opts.Bound)
	assert.Equal(t, label.KindRandom, opts.Kind)

	m.MaxLabels = 7
	assert.Equal(t, 7, m.LabelOptions().Bound)
}
