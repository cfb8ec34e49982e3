package ffmpeg

import (
	"context"
	"fmt"
)

// envFFmpegPath overrides the binary lookup.
const envFFmpegPath = "FFMPEG_PATH"

// Resolver locates the ffmpeg binary used for video frames.
// Video support is optional: callers treat ErrNotFound as "videos disabled".
type Resolver struct {
	fs  fileSystem
	env envProvider
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithEnvProvider sets the environment provider implementation.
func WithEnvProvider(e envProvider) ResolverOption {
	return func(r *Resolver) { r.env = e }
}

// WithResolverFileSystem sets the filesystem used to check FFMPEG_PATH.
func WithResolverFileSystem(fs fileSystem) ResolverOption {
	return func(r *Resolver) { r.fs = fs }
}

// NewResolver creates a Resolver with the given options.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fs:  osFileSystem{},
		env: osEnvProvider{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns FFMPEG_PATH when set, else ffmpeg from PATH.
// A FFMPEG_PATH that is missing or names a directory is an error rather
// than a silent fallback to PATH.
func (r *Resolver) Resolve(_ context.Context) (string, error) {
	if envPath := r.env.Getenv(envFFmpegPath); envPath != "" {
		info, err := r.fs.Stat(envPath)
		switch {
		case err != nil:
			return "", fmt.Errorf("%w: %s is set to %q but binary not found", ErrNotFound, envFFmpegPath, envPath)
		case info.IsDir():
			return "", fmt.Errorf("%w: %s is set to %q, which is a directory", ErrNotFound, envFFmpegPath, envPath)
		}
		return envPath, nil
	}

	if path, err := r.env.LookPath("ffmpeg"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("%w: video files need FFmpeg.\n\n%s", ErrNotFound, installInstructions)
}

const installInstructions = `Install FFmpeg:
  macOS:   brew install ffmpeg
  Ubuntu:  sudo apt install ffmpeg
  Windows: winget install ffmpeg

Or point FFMPEG_PATH at an existing binary.
Without FFmpeg, videos are skipped and other files are still renamed.`
