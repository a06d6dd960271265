package toolchain

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiler_Args(t *testing.T) {
	t.Parallel()

	c := &Compiler{Command: "gcc", Flags: []string{"-O3", "-Werror"}}
	assert.Equal(t,
		[]string{"gcc", "-O3", "-Werror", "prog.c", "-o", "prog"},
		c.Args("prog.c", "prog"))
}

func TestCompiler_Success(t *testing.T) {
	t.Parallel()
	if !Available("true") {
		t.Skip("true(1) not available")
	}

	c := &Compiler{Command: "true"}
	require.NoError(t, c.Compile(context.Background(), "prog.c", "prog"))
}

func TestCompiler_NonZeroExit(t *testing.T) {
	t.Parallel()
	if !Available("sh") {
		t.Skip("sh not available")
	}

	var stderr bytes.Buffer
	// sh -c '...' prog.c -o prog: the script sees prog.c as $0.
	c := &Compiler{
		Command: "sh",
		Flags:   []string{"-c", "echo broken >&2; exit 3"},
		Stderr:  &stderr,
	}
	err := c.Compile(context.Background(), "prog.c", "prog")
	require.Error(t, err)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 3, ce.ExitCode)
	assert.Equal(t, []string{"sh", "-c", "echo broken >&2; exit 3", "prog.c", "-o", "prog"}, ce.Command)
	assert.Equal(t, "broken\n", stderr.String())
}

func TestCompiler_MissingCommand(t *testing.T) {
	t.Parallel()

	c := &Compiler{Command: "bfc-no-such-compiler"}
	err := c.Compile(context.Background(), "prog.c", "prog")
	require.ErrorIs(t, err, exec.ErrNotFound)

	var ce *CompileError
	assert.False(t, errors.As(err, &ce))
}
