// Package provider sends prompts and images to a model and returns its raw text.
//
// Two wire formats are supported behind the Invoker interface: Ollama's
// generate endpoint, and OpenAI-compatible chat completions (OpenAI itself and
// LM Studio). Failures are classified into apierr sentinels uniformly,
// whatever the wire format.
package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Provider kinds.
const (
	Ollama   Kind = "ollama"
	OpenAI   Kind = "openai"
	LMStudio Kind = "lm-studio"
)

// DefaultTimeout is the budget of one model call.
// Vision models on local hardware can take minutes on large images.
const DefaultTimeout = 2 * time.Minute

// maxResponseSize limits response bodies to prevent OOM from malformed responses (10MB).
const maxResponseSize = 10 * 1024 * 1024

// Kind selects a provider wire format.
type Kind string

// ParseKind normalizes a provider name ("Ollama", "lmstudio", "LM_Studio").
// Returns ErrUnsupportedKind for anything else.
func ParseKind(s string) (Kind, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case string(Ollama):
		return Ollama, nil
	case string(OpenAI):
		return OpenAI, nil
	case string(LMStudio), "lmstudio":
		return LMStudio, nil
	}
	return "", fmt.Errorf("%q (use one of: ollama, openai, lm-studio): %w", s, ErrUnsupportedKind)
}

// Kinds returns the supported kinds in display order.
func Kinds() []Kind {
	return []Kind{Ollama, OpenAI, LMStudio}
}

// DisplayName returns the human-readable provider name used in messages.
func (k Kind) DisplayName() string {
	switch k {
	case Ollama:
		return "Ollama"
	case OpenAI:
		return "OpenAI"
	case LMStudio:
		return "LM Studio"
	}
	return string(k)
}

// DefaultEndpoint returns the usual base URL for the kind.
func (k Kind) DefaultEndpoint() string {
	switch k {
	case Ollama:
		return "http://127.0.0.1:11434"
	case OpenAI:
		return "https://api.openai.com"
	case LMStudio:
		return "http://127.0.0.1:1234"
	}
	return ""
}

// Config is the resolved provider tuple for one call.
// Empty Endpoint uses the kind default; zero Timeout uses DefaultTimeout.
// APIKey is sent as a bearer token when non-empty.
type Config struct {
	Kind     Kind
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// Invoker sends one prompt with optional images and returns the raw response text.
type Invoker interface {
	Invoke(ctx context.Context, prompt string, images [][]byte) (string, error)
}

// httpDoer abstracts HTTP client for testing.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

type options struct {
	httpClient httpDoer
	completer  chatCompleter
}

// Option configures New.
type Option func(*options)

// WithHTTPClient sets a custom HTTP client (for testing or proxies).
func WithHTTPClient(c httpDoer) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// withChatCompleter replaces the go-openai client (for testing).
func withChatCompleter(c chatCompleter) Option {
	return func(o *options) {
		o.completer = c
	}
}

// New returns the Invoker for cfg.Kind.
// An unknown kind fails with ErrUnsupportedKind before anything touches the network.
func New(cfg Config, opts ...Option) (Invoker, error) {
	kind, err := ParseKind(string(cfg.Kind))
	if err != nil {
		return nil, err
	}
	cfg.Kind = kind
	cfg.Endpoint = strings.TrimSuffix(strings.TrimSpace(cfg.Endpoint), "/")
	if cfg.Endpoint == "" {
		cfg.Endpoint = kind.DefaultEndpoint()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		// The call budget is enforced with a context deadline, not a client timeout,
		// so a timeout can be told apart from a caller cancellation.
		o.httpClient = &http.Client{}
	}

	switch kind {
	case Ollama:
		return newOllamaInvoker(cfg, o.httpClient), nil
	default:
		return newChatInvoker(cfg, o), nil
	}
}
