package ffmpeg

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// framesDirPerm is the permission mode of per-video temp directories.
const framesDirPerm = 0o700

// durationPattern matches the "Duration: HH:MM:SS.xx" line FFmpeg prints for an input.
var durationPattern = regexp.MustCompile(`Duration:\s*(\d+):(\d{2}):(\d{2}(?:\.\d+)?)`)

// FrameExtractor samples still frames from videos.
type FrameExtractor struct {
	ffmpegPath string
	exec       *Executor
	fs         fileSystem
	tempRoot   string
	newID      func() string
}

// FrameOption configures a FrameExtractor.
type FrameOption func(*FrameExtractor)

// WithExecutor sets the command executor (for testing).
func WithExecutor(e *Executor) FrameOption {
	return func(f *FrameExtractor) { f.exec = e }
}

// WithFileSystem sets the filesystem implementation (for testing).
func WithFileSystem(fs fileSystem) FrameOption {
	return func(f *FrameExtractor) { f.fs = fs }
}

// WithTempRoot sets the directory under which per-video frame directories are created.
func WithTempRoot(dir string) FrameOption {
	return func(f *FrameExtractor) { f.tempRoot = dir }
}

// NewFrameExtractor creates a FrameExtractor running the binary at ffmpegPath.
func NewFrameExtractor(ffmpegPath string, opts ...FrameOption) *FrameExtractor {
	f := &FrameExtractor{
		ffmpegPath: ffmpegPath,
		exec:       NewExecutor(),
		fs:         osFileSystem{},
		tempRoot:   filepath.Join(os.TempDir(), "airename"),
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ExtractFrames returns up to n JPEG frames taken at evenly spaced points of the video.
// Frames are written to a fresh temp directory which is removed before returning.
func (f *FrameExtractor) ExtractFrames(ctx context.Context, videoPath string, n int) (_ [][]byte, err error) {
	if n < 1 {
		n = 1
	}

	duration, err := f.Duration(ctx, videoPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(f.tempRoot, f.newID())
	if err := f.fs.MkdirAll(dir, framesDirPerm); err != nil {
		return nil, fmt.Errorf("create frames directory: %w", err)
	}
	defer func() {
		if rmErr := f.fs.RemoveAll(dir); rmErr != nil && err == nil {
			err = fmt.Errorf("remove frames directory: %w", rmErr)
		}
	}()

	var frames [][]byte
	for i, at := range Timestamps(duration, n) {
		out := filepath.Join(dir, fmt.Sprintf("frame-%02d.jpg", i+1))
		if output, runErr := f.exec.GrabFrame(ctx, f.ffmpegPath, videoPath, at, out); runErr != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("extract frame at %s: %w\nOutput: %s", formatSeconds(at), runErr, output)
		}

		data, readErr := f.fs.ReadFile(out)
		if errors.Is(readErr, os.ErrNotExist) {
			// Seeking past the last keyframe yields no image; keep the others.
			continue
		}
		if readErr != nil {
			return nil, fmt.Errorf("read frame: %w", readErr)
		}
		frames = append(frames, data)
	}

	if len(frames) == 0 {
		return nil, fmt.Errorf("%s: %w", filepath.Base(videoPath), ErrNoFrames)
	}
	return frames, nil
}

// Duration probes the length of a video.
func (f *FrameExtractor) Duration(ctx context.Context, videoPath string) (time.Duration, error) {
	output, runErr := f.exec.Probe(ctx, f.ffmpegPath, videoPath)
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	d, ok := ParseDuration(output)
	if !ok {
		if runErr != nil {
			return 0, fmt.Errorf("%s: %w: %v", filepath.Base(videoPath), ErrNoDuration, runErr)
		}
		return 0, fmt.Errorf("%s: %w", filepath.Base(videoPath), ErrNoDuration)
	}
	return d, nil
}

// ParseDuration extracts the input duration from FFmpeg's stderr.
func ParseDuration(output string) (time.Duration, bool) {
	m := durationPattern.FindStringSubmatch(output)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	secs, _ := strconv.ParseFloat(m[3], 64)
	d := time.Duration(h)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(secs*float64(time.Second))
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// Timestamps returns n points splitting d into n+1 equal parts,
// so neither the first nor the last frame is a black fade.
func Timestamps(d time.Duration, n int) []time.Duration {
	points := make([]time.Duration, n)
	step := d / time.Duration(n+1)
	for i := range points {
		points[i] = step * time.Duration(i+1)
	}
	return points
}
