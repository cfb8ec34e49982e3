// Package source turns files into model input.
//
// Images are sent as-is, videos as a handful of sampled frames with a
// context prefix, and everything else as text content.
package source

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alnah/airename/internal/prompt"
)

// maxTextBytes bounds how much of a text file is read.
const maxTextBytes = 1 << 20

// DefaultFrames is the number of frames sampled from a video.
const DefaultFrames = 3

// Material is the model input extracted from one file.
type Material struct {
	Kind        Kind
	Content     string
	Images      [][]byte
	VideoPrompt string
}

// FrameExtractor samples frames from a video.
// *ffmpeg.FrameExtractor implements this implicitly.
type FrameExtractor interface {
	ExtractFrames(ctx context.Context, videoPath string, n int) ([][]byte, error)
}

// Loader reads files into Material.
type Loader struct {
	frames      FrameExtractor
	frameCount  int
	customTypes []string
}

// Option configures a Loader.
type Option func(*Loader)

// WithFrameExtractor enables video support.
// Without one, videos fail with ErrUnsupportedType.
func WithFrameExtractor(f FrameExtractor) Option {
	return func(l *Loader) { l.frames = f }
}

// WithFrameCount sets how many frames are sampled from each video.
func WithFrameCount(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.frameCount = n
		}
	}
}

// WithCustomTypes adds user extensions, read as text.
// Entries that do not normalize are ignored.
func WithCustomTypes(exts []string) Option {
	return func(l *Loader) {
		for _, e := range exts {
			if n, err := NormalizeExtension(e); err == nil {
				l.customTypes = append(l.customTypes, n)
			}
		}
	}
}

// NewLoader creates a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		frameCount: DefaultFrames,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CustomTypes returns the custom extensions the Loader accepts.
func (l *Loader) CustomTypes() []string {
	return append([]string(nil), l.customTypes...)
}

// Supports reports whether path has an extension the Loader can read.
func (l *Loader) Supports(path string) bool {
	kind, _, err := Classify(path, l.customTypes)
	if err != nil {
		return false
	}
	return kind != KindVideo || l.frames != nil
}

// Load extracts the model input for path.
func (l *Loader) Load(ctx context.Context, path string) (Material, error) {
	kind, _, err := Classify(path, l.customTypes)
	if err != nil {
		return Material{}, err
	}

	switch kind {
	case KindImage:
		data, err := readAll(path, -1)
		if err != nil {
			return Material{}, err
		}
		return Material{Kind: kind, Images: [][]byte{data}}, nil

	case KindVideo:
		if l.frames == nil {
			return Material{}, fmt.Errorf("video support needs FFmpeg: %w", ErrUnsupportedType)
		}
		frames, err := l.frames.ExtractFrames(ctx, path, l.frameCount)
		if err != nil {
			return Material{}, err
		}
		return Material{Kind: kind, Images: frames, VideoPrompt: prompt.VideoContext(len(frames))}, nil

	default:
		data, err := readAll(path, maxTextBytes)
		if err != nil {
			return Material{}, err
		}
		text := strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
		if text == "" || !mostlyText(text) {
			return Material{}, ErrNoText
		}
		return Material{Kind: kind, Content: text}, nil
	}
}

// readAll reads the file, at most limit bytes when limit > 0.
func readAll(path string, limit int64) (_ []byte, err error) {
	// #nosec G304 -- paths are files the user asked to rename
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	var r io.Reader = f
	if limit > 0 {
		r = io.LimitReader(f, limit)
	}
	return io.ReadAll(r)
}

// mostlyText rejects binary files that happen to carry a text extension.
func mostlyText(s string) bool {
	var control, total int
	for _, r := range s {
		total++
		if r == utf8.RuneError || (r < 0x20 && r != '\n' && r != '\r' && r != '\t') {
			control++
		}
	}
	return control*10 < total
}
