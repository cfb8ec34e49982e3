package ffmpeg

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"time"
)

// runOutputFn runs the binary at path and returns what it wrote to stderr.
type runOutputFn func(ctx context.Context, path string, args []string) (string, error)

// Executor builds and runs the two FFmpeg invocations frame sampling needs:
// a probe that prints stream info, and a single-frame grab.
type Executor struct {
	runOutput runOutputFn
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithRunOutput replaces process execution (for testing).
func WithRunOutput(fn runOutputFn) ExecutorOption {
	return func(e *Executor) { e.runOutput = fn }
}

// NewExecutor creates an Executor with the given options.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{runOutput: defaultRunOutput}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Probe asks FFmpeg to describe videoPath.
// With no output file FFmpeg exits non-zero after printing the stream info,
// so the returned output is meaningful even when err is not nil.
func (e *Executor) Probe(ctx context.Context, ffmpegPath, videoPath string) (string, error) {
	return e.runOutput(ctx, ffmpegPath, []string{"-hide_banner", "-i", videoPath})
}

// GrabFrame writes the frame at offset at of videoPath to out as a JPEG.
// Seeking happens before decoding, so a grab costs the same wherever it lands.
func (e *Executor) GrabFrame(ctx context.Context, ffmpegPath, videoPath string, at time.Duration, out string) (string, error) {
	return e.runOutput(ctx, ffmpegPath, []string{
		"-hide_banner", "-loglevel", "error",
		"-ss", formatSeconds(at),
		"-i", videoPath,
		"-frames:v", "1",
		"-q:v", "2",
		"-y", out,
	})
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

func defaultRunOutput(ctx context.Context, ffmpegPath string, args []string) (string, error) {
	cmd := exec.CommandContext(ctx, ffmpegPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}
