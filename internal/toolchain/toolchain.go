// Package toolchain runs the native C compiler on generated programs.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/vk/bfc/internal/ctxlog"
)

// CompileError reports a compiler that ran and exited unsuccessfully.
type CompileError struct {
	Command  []string
	ExitCode int
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("native compiler failed with exit code %d: %s", e.ExitCode, strings.Join(e.Command, " "))
}

func (e *CompileError) Unwrap() error { return e.Err }

// Compiler invokes a C compiler as `Command Flags... <c file> -o <binary>`.
type Compiler struct {
	Command string
	Flags   []string
	// Stdout and Stderr receive the compiler's own output unchanged.
	Stdout io.Writer
	Stderr io.Writer
}

// Args returns the full argument vector, command first.
func (c *Compiler) Args(cFile, binary string) []string {
	args := make([]string, 0, len(c.Flags)+4)
	args = append(args, c.Command)
	args = append(args, c.Flags...)
	return append(args, cFile, "-o", binary)
}

// Compile blocks until the compiler exits. A non-zero exit is returned as a
// *CompileError; diagnostics are left on Stderr for the user.
func (c *Compiler) Compile(ctx context.Context, cFile, binary string) error {
	logger := ctxlog.FromContext(ctx)
	args := c.Args(cFile, binary)
	logger.Debug("Running native compiler.", "command", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &CompileError{Command: args, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return fmt.Errorf("running %s: %w", c.Command, err)
	}

	logger.Debug("Native compiler finished.", "binary", binary)
	return nil
}

// Available reports whether command can be found on PATH.
func Available(command string) bool {
	_, err := exec.LookPath(command)
	return err == nil
}
