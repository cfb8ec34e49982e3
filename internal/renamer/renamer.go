// Package renamer derives filenames from file content through an AI model.
//
// ComputeFilename runs the whole pipeline for one request: prompt, model call,
// response cleanup and case conversion. Preview does the same for a batch of
// files and Apply performs the renames.
package renamer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/airename/internal/apierr"
	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/lang"
	"github.com/alnah/airename/internal/logger"
	"github.com/alnah/airename/internal/prompt"
	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/sanitize"
)

// DefaultConcurrency is the number of files processed at once by Preview.
const DefaultConcurrency = 4

// Request describes one filename computation.
// At least one of Content or Images must be set.
type Request struct {
	Content            string
	Images             [][]byte
	VideoPrompt        string
	Case               casing.Style  // zero means kebabCase
	MaxChars           int           // must be positive
	Language           lang.Language // zero means English
	CustomInstructions string
	Provider           provider.Config
}

// InvokerFactory creates the model invoker for a provider configuration.
type InvokerFactory func(cfg provider.Config) (provider.Invoker, error)

// Renamer computes filenames. The zero value is not usable; call New.
type Renamer struct {
	newInvoker  InvokerFactory
	sanitizer   *sanitize.Sanitizer
	log         *logger.Logger
	retry       apierr.RetryConfig
	concurrency int
}

// Option configures a Renamer.
type Option func(*Renamer)

// WithInvokerFactory replaces provider.New.
func WithInvokerFactory(f InvokerFactory) Option {
	return func(r *Renamer) {
		if f != nil {
			r.newInvoker = f
		}
	}
}

// WithSanitizer sets the response sanitizer.
func WithSanitizer(s *sanitize.Sanitizer) Option {
	return func(r *Renamer) {
		if s != nil {
			r.sanitizer = s
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Renamer) {
		if l != nil {
			r.log = l
		}
	}
}

// WithRetries enables up to n extra attempts for transport and timeout
// failures, with the default backoff.
func WithRetries(n int) Option {
	return func(r *Renamer) {
		r.retry = apierr.DefaultRetryConfig(n)
	}
}

// WithRetryConfig sets the retry policy.
func WithRetryConfig(cfg apierr.RetryConfig) Option {
	return func(r *Renamer) {
		r.retry = cfg
	}
}

// WithConcurrency sets how many files Preview processes at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(r *Renamer) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// New creates a Renamer. Without options it calls providers directly,
// never retries and processes DefaultConcurrency files at once.
func New(opts ...Option) *Renamer {
	r := &Renamer{
		newInvoker: func(cfg provider.Config) (provider.Invoker, error) {
			return provider.New(cfg)
		},
		sanitizer:   sanitize.New(),
		log:         logger.Discard(),
		retry:       apierr.DefaultRetryConfig(0),
		concurrency: DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenamer = New()

// ComputeFilename computes a filename with a default Renamer.
func ComputeFilename(ctx context.Context, req Request) (string, error) {
	return defaultRenamer.ComputeFilename(ctx, req)
}

// ComputeFilename returns the filename, without extension, for the request.
//
// Configuration errors (bad length budget, unknown provider kind) are
// returned before any network call. A model answer that cleans up to nothing
// fails with sanitize.ErrEmptyResult; an empty name is never returned.
func (r *Renamer) ComputeFilename(ctx context.Context, req Request) (string, error) {
	if req.MaxChars <= 0 {
		return "", fmt.Errorf("got %d: %w", req.MaxChars, ErrInvalidMaxChars)
	}
	if strings.TrimSpace(req.Content) == "" && len(req.Images) == 0 {
		return "", ErrNoContent
	}

	invoker, err := r.newInvoker(req.Provider)
	if err != nil {
		return "", err
	}

	style := req.Case.OrDefault()
	text := prompt.Build(prompt.Options{
		Case:               style,
		MaxChars:           req.MaxChars,
		Language:           req.Language.OrDefault(),
		Content:            req.Content,
		VideoPrompt:        req.VideoPrompt,
		CustomInstructions: req.CustomInstructions,
	})

	log := r.log.WithContext(ctx)
	cfg := r.retry
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		log.Warn("retrying model call", "attempt", attempt, "delay", delay, "error", err)
	}

	return apierr.RetryWithBackoff(ctx, cfg, func(ctx context.Context) (string, error) {
		start := time.Now()
		raw, err := invoker.Invoke(ctx, text, req.Images)
		if err != nil {
			return "", err
		}
		log.Debug("model answered",
			"provider", string(req.Provider.Kind),
			"model", req.Provider.Model,
			"images", len(req.Images),
			"elapsed", time.Since(start),
			"raw", raw)

		cleaned, err := r.sanitizer.Clean(raw, req.MaxChars)
		if err != nil {
			return "", err
		}
		name := casing.Convert(cleaned, style)
		if name == "" {
			return "", fmt.Errorf("%q has no words: %w", cleaned, sanitize.ErrEmptyResult)
		}
		return name, nil
	})
}
