package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// safeBuffer is a thread-safe buffer for capturing log output in tests.
type safeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

const sampleCatalog = `# sample catalog
CSCI100,Introduction to Computer Science
CSCI101,Introduction to Programming in C++,CSCI100
CSCI200,Data Structures,CSCI101
MATH201,Discrete Mathematics
CSCI300,Introduction to Algorithms,CSCI200,MATH201
CSCI350,Operating Systems,CSCI300,PHYS999
`

const cyclicCatalog = `BASE1,Base
A1,Alpha,B1,BASE1
B1,Beta,A1
`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "courses.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// setupAppTest creates an app with debug logging captured in a buffer.
func setupAppTest(t *testing.T, cfg Config, input string) (*App, *bytes.Buffer, *safeBuffer) {
	t.Helper()

	if cfg.Output == "" {
		cfg.Output = "text"
	}
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	out := &bytes.Buffer{}
	logs := &safeBuffer{}
	var in io.Reader = strings.NewReader(input)
	testApp := NewApp(in, out, logs, &cfg)

	t.Cleanup(func() {
		if os.Getenv("COURSEPLAN_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	return testApp, out, logs
}
