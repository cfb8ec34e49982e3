package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alnah/airename/internal/config"
)

// ---------------------------------------------------------------------------
// syncBuffer - thread-safe bytes.Buffer for concurrent test output
// ---------------------------------------------------------------------------

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Compile-time check that syncBuffer implements io.Writer.
var _ io.Writer = (*syncBuffer)(nil)

// ---------------------------------------------------------------------------
// testMocks - convenience struct for grouping all mocks
// ---------------------------------------------------------------------------

type testMocks struct {
	ffmpegResolver *mockFFmpegResolver
	configLoader   *mockConfigLoader
	invoker        *mockInvokerFactory
	frames         *mockFrameExtractorFactory
}

func newTestMocks() *testMocks {
	return &testMocks{
		ffmpegResolver: &mockFFmpegResolver{},
		configLoader:   &mockConfigLoader{},
		invoker:        &mockInvokerFactory{mockInvoker: &mockInvoker{}},
		frames:         &mockFrameExtractorFactory{extractor: &mockFrameExtractor{}},
	}
}

// ---------------------------------------------------------------------------
// testEnv - creates a fully mocked Env for testing
// ---------------------------------------------------------------------------

// testEnvOptions configures a test environment.
type testEnvOptions struct {
	getenv func(string) string
	now    func() time.Time
	mocks  *testMocks
}

// testEnvOption configures testEnv.
type testEnvOption func(*testEnvOptions)

func withTestGetenv(fn func(string) string) testEnvOption {
	return func(o *testEnvOptions) { o.getenv = fn }
}

func withTestMocks(m *testMocks) testEnvOption {
	return func(o *testEnvOptions) { o.mocks = m }
}

// testEnv creates a test Env with all dependencies mocked.
// Returns the Env, its stdout and stderr buffers, and the mocks for assertions.
func testEnv(opts ...testEnvOption) (*Env, *syncBuffer, *syncBuffer, *testMocks) {
	options := &testEnvOptions{
		getenv: staticEnv(nil),
		now:    fixedTime(time.Date(2026, 1, 26, 14, 30, 52, 0, time.UTC)),
		mocks:  newTestMocks(),
	}

	for _, opt := range opts {
		opt(options)
	}

	stdout, stderr := &syncBuffer{}, &syncBuffer{}
	env := &Env{
		Stdout:                stdout,
		Stderr:                stderr,
		Getenv:                options.getenv,
		Now:                   options.now,
		FFmpegResolver:        options.mocks.ffmpegResolver,
		ConfigLoader:          options.mocks.configLoader,
		InvokerFactory:        options.mocks.invoker,
		FrameExtractorFactory: options.mocks.frames,
	}

	return env, stdout, stderr, options.mocks
}

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// fixedTime returns a function that always returns the given time.
func fixedTime(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// staticEnv returns a getenv function that returns values from the given map.
func staticEnv(env map[string]string) func(string) string {
	return func(key string) string {
		return env[key]
	}
}

// isolateConfig points the config dir at a temp dir and clears AIRENAME_*
// fallbacks. Not compatible with t.Parallel.
func isolateConfig(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	for _, key := range config.Keys() {
		t.Setenv(config.EnvName(key), "")
	}
	return tmp
}

// writeFiles creates files with content under a new temp dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to create %s: %v", p, err)
		}
	}
	return dir
}

// configWith returns a ConfigLoader that returns defaults changed by fn.
func configWith(fn func(*config.Config)) *mockConfigLoader {
	return &mockConfigLoader{
		LoadFunc: func() (config.Config, error) {
			cfg := config.Defaults()
			fn(&cfg)
			return cfg, nil
		},
	}
}
