package testutil

import (
	"os/exec"
	"testing"
)

// FindCC returns the first C compiler found on PATH, skipping the test when
// there is none.
func FindCC(t *testing.T) string {
	t.Helper()
	for _, cc := range []string{"cc", "gcc", "clang"} {
		if _, err := exec.LookPath(cc); err == nil {
			return cc
		}
	}
	t.Skip("no C compiler on PATH")
	return ""
}
