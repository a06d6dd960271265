package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/vk/bfc/internal/app"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      bool
		expectedConfig *app.Config
		checkOutput    func(t *testing.T, output string)
	}{
		{
			name: "Happy Path with all flags",
			args: []string{
				"-config", "/etc/bfc.hcl",
				"--c-file=/tmp/hello.c",
				"-o", "/tmp/hello",
				"-cc=clang",
				"-cells=1024",
				"-max-labels=50",
				"-allocator=random",
				"-workers=4",
				"--log-level=debug",
				"--log-format=json",
				"hello.bf",
			},
			expectedConfig: &app.Config{
				Sources:    []string{"hello.bf"},
				ConfigPath: "/etc/bfc.hcl",
				CFile:      "/tmp/hello.c",
				Binary:     "/tmp/hello",
				Compiler:   "clang",
				Cells:      1024,
				MaxLabels:  50,
				Allocator:  "random",
				Workers:    4,
				LogLevel:   "debug",
				LogFormat:  "json",
			},
		},
		{
			name: "Defaults with several sources",
			args: []string{"-emit-only", "a.bf", "progs/"},
			expectedConfig: &app.Config{
				Sources:   []string{"a.bf", "progs/"},
				EmitOnly:  true,
				Workers:   1,
				LogLevel:  "info",
				LogFormat: "text",
			},
		},
		{
			name: "Init config needs no source",
			args: []string{"-init-config", "bfc.hcl"},
			expectedConfig: &app.Config{
				InitConfig: "bfc.hcl",
				Workers:    1,
				LogLevel:   "info",
				LogFormat:  "text",
			},
		},
		{
			name:       "Help flag triggers clean exit",
			args:       []string{"-h"},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "Usage:"), "Expected help text to be printed")
			},
		},
		{
			name:       "No source triggers clean exit with usage",
			args:       []string{},
			expectExit: true,
			checkOutput: func(t *testing.T, output string) {
				require.True(t, strings.Contains(output, "SOURCE..."), "Expected help text to be printed")
			},
		},
		{
			name:      "Invalid log level returns an error",
			args:      []string{"--log-level=foo", "a.bf"},
			expectErr: true,
		},
		{
			name:      "Invalid log format returns an error",
			args:      []string{"--log-format=yaml", "a.bf"},
			expectErr: true,
		},
		{
			name:      "Unknown allocator returns an error",
			args:      []string{"-allocator=sequential", "a.bf"},
			expectErr: true,
		},
		{
			name:      "Output path with several sources returns an error",
			args:      []string{"-o", "prog", "a.bf", "b.bf"},
			expectErr: true,
		},
		{
			name:      "Zero workers returns an error",
			args:      []string{"-workers=0", "a.bf"},
			expectErr: true,
		},
		{
			name:      "Unknown flag returns an error",
			args:      []string{"-optimize", "a.bf"},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			out := &bytes.Buffer{}

			// --- Act ---
			appConfig, shouldExit, err := Parse(tc.args, out)

			// --- Assert ---
			if tc.expectErr {
				require.Error(t, err)
				exitErr, isExitError := err.(*ExitError)
				require.True(t, isExitError, "Expected error to be of type ExitError")
				require.Equal(t, 2, exitErr.Code)
				return
			}
			require.NoError(t, err)

			require.Equal(t, tc.expectExit, shouldExit)

			if tc.expectedConfig != nil {
				if diff := cmp.Diff(tc.expectedConfig, appConfig, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("Config mismatch (-want +got):\n%s", diff)
				}
			}

			if tc.checkOutput != nil {
				tc.checkOutput(t, out.String())
			}
		})
	}
}
