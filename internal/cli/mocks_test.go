package cli

import (
	"context"
	"sync"

	"github.com/alnah/airename/internal/config"
	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/source"
)

// ---------------------------------------------------------------------------
// Mock FFmpegResolver
// ---------------------------------------------------------------------------

type mockFFmpegResolver struct {
	ResolveFunc func(ctx context.Context) (string, error)

	mu           sync.Mutex
	resolveCalls int
}

func (m *mockFFmpegResolver) Resolve(ctx context.Context) (string, error) {
	m.mu.Lock()
	m.resolveCalls++
	m.mu.Unlock()

	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx)
	}
	return "/usr/bin/ffmpeg", nil
}

func (m *mockFFmpegResolver) ResolveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveCalls
}

// ---------------------------------------------------------------------------
// Mock ConfigLoader
// ---------------------------------------------------------------------------

type mockConfigLoader struct {
	LoadFunc func() (config.Config, error)

	mu        sync.Mutex
	loadCalls int
}

func (m *mockConfigLoader) Load() (config.Config, error) {
	m.mu.Lock()
	m.loadCalls++
	m.mu.Unlock()

	if m.LoadFunc != nil {
		return m.LoadFunc()
	}
	return config.Defaults(), nil
}

// ---------------------------------------------------------------------------
// Mock InvokerFactory and Invoker
// ---------------------------------------------------------------------------

type mockInvoker struct {
	InvokeFunc func(ctx context.Context, prompt string, images [][]byte) (string, error)

	mu      sync.Mutex
	calls   int
	prompts []string
	images  []int
}

func (m *mockInvoker) Invoke(ctx context.Context, prompt string, images [][]byte) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.images = append(m.images, len(images))
	m.mu.Unlock()

	if m.InvokeFunc != nil {
		return m.InvokeFunc(ctx, prompt, images)
	}
	return "Generated Name", nil
}

func (m *mockInvoker) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockInvoker) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

func (m *mockInvoker) ImageCounts() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.images...)
}

type mockInvokerFactory struct {
	NewInvokerFunc func(cfg provider.Config) (provider.Invoker, error)
	mockInvoker    *mockInvoker

	mu      sync.Mutex
	calls   int
	lastCfg provider.Config
}

func (m *mockInvokerFactory) NewInvoker(cfg provider.Config) (provider.Invoker, error) {
	m.mu.Lock()
	m.calls++
	m.lastCfg = cfg
	if m.mockInvoker == nil {
		m.mockInvoker = &mockInvoker{}
	}
	inv := m.mockInvoker
	m.mu.Unlock()

	if m.NewInvokerFunc != nil {
		return m.NewInvokerFunc(cfg)
	}
	return inv, nil
}

func (m *mockInvokerFactory) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockInvokerFactory) LastConfig() provider.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastCfg
}

// ---------------------------------------------------------------------------
// Mock FrameExtractorFactory
// ---------------------------------------------------------------------------

type mockFrameExtractor struct {
	ExtractFunc func(ctx context.Context, videoPath string, n int) ([][]byte, error)

	mu    sync.Mutex
	calls int
	lastN int
}

func (m *mockFrameExtractor) ExtractFrames(ctx context.Context, videoPath string, n int) ([][]byte, error) {
	m.mu.Lock()
	m.calls++
	m.lastN = n
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, videoPath, n)
	}
	frames := make([][]byte, n)
	for i := range frames {
		frames[i] = []byte{0xff, 0xd8, byte(i)}
	}
	return frames, nil
}

func (m *mockFrameExtractor) Calls() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls, m.lastN
}

type mockFrameExtractorFactory struct {
	extractor *mockFrameExtractor
	lastPath  string
}

func (m *mockFrameExtractorFactory) NewFrameExtractor(ffmpegPath string) source.FrameExtractor {
	m.lastPath = ffmpegPath
	return m.extractor
}

// Compile-time interface verification.
var (
	_ FFmpegResolver        = (*mockFFmpegResolver)(nil)
	_ ConfigLoader          = (*mockConfigLoader)(nil)
	_ InvokerFactory        = (*mockInvokerFactory)(nil)
	_ provider.Invoker      = (*mockInvoker)(nil)
	_ FrameExtractorFactory = (*mockFrameExtractorFactory)(nil)
	_ source.FrameExtractor = (*mockFrameExtractor)(nil)
)
