package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/alnah/airename/internal/config"
	"github.com/alnah/airename/internal/ffmpeg"
	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/source"
)

// Env holds injectable dependencies for CLI commands.
// This is the central injection point for testing CLI commands in isolation.
//
// All fields have sensible defaults via DefaultEnv(). Tests can override
// specific fields using the With* options or by creating a custom Env.
//
// Env must not be nil when passed to command functions. Use DefaultEnv()
// or NewEnv() to create a valid instance.
type Env struct {
	// I/O and environment
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	Now    func() time.Time

	// Factories for domain objects
	FFmpegResolver        FFmpegResolver
	ConfigLoader          ConfigLoader
	InvokerFactory        InvokerFactory
	FrameExtractorFactory FrameExtractorFactory
}

// FFmpegResolver resolves the path to the FFmpeg binary.
type FFmpegResolver interface {
	Resolve(ctx context.Context) (string, error)
}

// ConfigLoader loads and provides access to configuration.
type ConfigLoader interface {
	Load() (config.Config, error)
}

// InvokerFactory creates model invokers.
type InvokerFactory interface {
	NewInvoker(cfg provider.Config) (provider.Invoker, error)
}

// FrameExtractorFactory creates video frame extractors.
type FrameExtractorFactory interface {
	NewFrameExtractor(ffmpegPath string) source.FrameExtractor
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithNow sets the time provider.
func WithNow(fn func() time.Time) EnvOption {
	return func(e *Env) {
		e.Now = fn
	}
}

// WithFFmpegResolver sets the FFmpeg resolver.
func WithFFmpegResolver(r FFmpegResolver) EnvOption {
	return func(e *Env) {
		e.FFmpegResolver = r
	}
}

// WithConfigLoader sets the config loader.
func WithConfigLoader(l ConfigLoader) EnvOption {
	return func(e *Env) {
		e.ConfigLoader = l
	}
}

// WithInvokerFactory sets the invoker factory.
func WithInvokerFactory(f InvokerFactory) EnvOption {
	return func(e *Env) {
		e.InvokerFactory = f
	}
}

// WithFrameExtractorFactory sets the frame extractor factory.
func WithFrameExtractorFactory(f FrameExtractorFactory) EnvOption {
	return func(e *Env) {
		e.FrameExtractorFactory = f
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout:                os.Stdout,
		Stderr:                os.Stderr,
		Getenv:                os.Getenv,
		Now:                   time.Now,
		FFmpegResolver:        &defaultFFmpegResolver{},
		ConfigLoader:          &defaultConfigLoader{},
		InvokerFactory:        &defaultInvokerFactory{},
		FrameExtractorFactory: &defaultFrameExtractorFactory{},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}

// ---------------------------------------------------------------------------
// Default implementations - delegate to real packages
// ---------------------------------------------------------------------------

// defaultFFmpegResolver implements FFmpegResolver using the ffmpeg package.
type defaultFFmpegResolver struct{}

func (defaultFFmpegResolver) Resolve(ctx context.Context) (string, error) {
	return ffmpeg.NewResolver().Resolve(ctx)
}

// defaultConfigLoader implements ConfigLoader using the config package.
type defaultConfigLoader struct{}

func (defaultConfigLoader) Load() (config.Config, error) {
	return config.Load()
}

// defaultInvokerFactory implements InvokerFactory using the provider package.
type defaultInvokerFactory struct{}

func (defaultInvokerFactory) NewInvoker(cfg provider.Config) (provider.Invoker, error) {
	return provider.New(cfg)
}

// defaultFrameExtractorFactory implements FrameExtractorFactory using FFmpeg.
type defaultFrameExtractorFactory struct{}

func (defaultFrameExtractorFactory) NewFrameExtractor(ffmpegPath string) source.FrameExtractor {
	return ffmpeg.NewFrameExtractor(ffmpegPath)
}

// Compile-time interface verification.
var (
	_ FFmpegResolver        = (*defaultFFmpegResolver)(nil)
	_ ConfigLoader          = (*defaultConfigLoader)(nil)
	_ InvokerFactory        = (*defaultInvokerFactory)(nil)
	_ FrameExtractorFactory = (*defaultFrameExtractorFactory)(nil)
)
