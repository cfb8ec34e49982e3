package renamer_test

import (
	"context"
	"sync"
	"time"

	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/source"
)

// mockInvoker implements provider.Invoker with call tracking.
type mockInvoker struct {
	mu       sync.Mutex
	calls    int
	prompts  []string
	inFlight int
	maxSeen  int
	delay    time.Duration

	// respond computes the answer for one call (1-based).
	respond func(call int, prompt string, images [][]byte) (string, error)
}

var _ provider.Invoker = (*mockInvoker)(nil)

func (m *mockInvoker) Invoke(ctx context.Context, prompt string, images [][]byte) (string, error) {
	m.mu.Lock()
	m.calls++
	call := m.calls
	m.prompts = append(m.prompts, prompt)
	m.inFlight++
	m.maxSeen = max(m.maxSeen, m.inFlight)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.inFlight--
		m.mu.Unlock()
	}()

	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return m.respond(call, prompt, images)
}

func (m *mockInvoker) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *mockInvoker) MaxInFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.maxSeen
}

func (m *mockInvoker) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

// answer returns a mockInvoker that always answers text.
func answer(text string) *mockInvoker {
	return &mockInvoker{respond: func(int, string, [][]byte) (string, error) { return text, nil }}
}

// factoryFor returns an invoker factory handing out inv and counting calls.
func factoryFor(inv provider.Invoker, count *int) func(provider.Config) (provider.Invoker, error) {
	return func(provider.Config) (provider.Invoker, error) {
		if count != nil {
			*count++
		}
		return inv, nil
	}
}

// mockLoader implements renamer.Loader from fixed materials.
type mockLoader struct {
	materials map[string]source.Material
	errs      map[string]error
}

func (m *mockLoader) Load(_ context.Context, path string) (source.Material, error) {
	if err, ok := m.errs[path]; ok {
		return source.Material{}, err
	}
	if mat, ok := m.materials[path]; ok {
		return mat, nil
	}
	return source.Material{}, source.ErrUnsupportedType
}
