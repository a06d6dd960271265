package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vk/bfc/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("bfc", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
bfc - Brainfuck to C compiler.

Usage:
  bfc [options] SOURCE...

Arguments:
  SOURCE
    A Brainfuck program, or a directory searched for *.bf and *.b files.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a bfc.hcl or bfc.yaml build configuration.")
	initConfigFlag := flagSet.String("init-config", "", "Write the resolved build configuration as HCL to this path and exit.")
	cFileFlag := flagSet.String("c-file", "", "Path of the generated C file (single source only).")
	outFlag := flagSet.String("o", "", "Path of the native executable (single source only).")
	emitOnlyFlag := flagSet.Bool("emit-only", false, "Write the C file but do not run the native compiler.")
	ccFlag := flagSet.String("cc", "", "Native C compiler to invoke (default from config, else gcc).")
	cellsFlag := flagSet.Int("cells", 0, "Size of the cell array in generated programs (default 300000).")
	maxLabelsFlag := flagSet.Int("max-labels", 0, "Bound of the loop label space (default 10 x cells).")
	allocatorFlag := flagSet.String("allocator", "", "Loop label allocator: 'counter' or 'random'.")
	workersFlag := flagSet.Int("workers", 1, "Number of sources compiled concurrently.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	sources := flagSet.Args()
	if len(sources) == 0 && *initConfigFlag == "" {
		slog.Debug("No source provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *workersFlag < 1 {
		return nil, false, &ExitError{Code: 2, Message: "invalid workers: must be at least 1"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		Sources:    sources,
		ConfigPath: *configFlag,
		InitConfig: *initConfigFlag,
		CFile:      *cFileFlag,
		Binary:     *outFlag,
		EmitOnly:   *emitOnlyFlag,
		Compiler:   *ccFlag,
		Cells:      *cellsFlag,
		MaxLabels:  *maxLabelsFlag,
		Allocator:  *allocatorFlag,
		LogFormat:  logFormat,
		LogLevel:   logLevel,
		Workers:    *workersFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
