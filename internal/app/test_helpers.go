package app

import (
	"bytes"
	"os"
	"sync"
	"testing"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance for system testing. Logs are
// captured in the returned buffer and dumped when BFC_TEST_LOGS=true.
func SetupAppTest(t *testing.T, appConfig *Config) (*App, *SafeBuffer, error) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	appConfig.LogLevel = "debug"
	cfg, err := NewConfig(*appConfig)
	if err != nil {
		return nil, logBuffer, err
	}
	testApp, err := NewApp(logBuffer, logBuffer, cfg)

	t.Cleanup(func() {
		if os.Getenv("BFC_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer, err
}
