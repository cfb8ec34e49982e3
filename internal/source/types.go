package source

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

// Kind is how a file's content is presented to the model.
type Kind string

// File kinds.
const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
	KindText  Kind = "text"
)

// Origin tells whether an extension is built in or user-added.
type Origin string

// Extension origins.
const (
	OriginBuiltin Origin = "builtin"
	OriginCustom  Origin = "custom"
)

var imageExts = []string{".bmp", ".gif", ".jpeg", ".jpg", ".png", ".tif", ".tiff", ".webp"}

var videoExts = []string{".avi", ".flv", ".m4v", ".mkv", ".mov", ".mp4", ".mpeg", ".mpg", ".webm", ".wmv"}

var textExts = []string{
	".c", ".cpp", ".css", ".csv", ".go", ".h", ".htm", ".html", ".java", ".js", ".json",
	".log", ".md", ".markdown", ".py", ".rb", ".rs", ".rst", ".sh", ".sql", ".tex",
	".toml", ".ts", ".tsv", ".txt", ".xml", ".yaml", ".yml",
}

// BuiltinExtensions returns every built-in extension, sorted.
func BuiltinExtensions() []string {
	all := slices.Concat(imageExts, videoExts, textExts)
	slices.Sort(all)
	return all
}

// Extensions returns the built-in extensions of one kind.
func Extensions(kind Kind) []string {
	switch kind {
	case KindImage:
		return slices.Clone(imageExts)
	case KindVideo:
		return slices.Clone(videoExts)
	case KindText:
		return slices.Clone(textExts)
	}
	return nil
}

// NormalizeExtension lowercases ext and ensures a leading dot.
// Returns ErrInvalidExtension for empty input or input containing separators.
func NormalizeExtension(ext string) (string, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" || strings.ContainsAny(ext, `./\ `) {
		return "", fmt.Errorf("%q: %w", ext, ErrInvalidExtension)
	}
	return "." + ext, nil
}

// Classify returns the kind of path based on its extension.
// Custom types are read as text.
// Returns ErrUnsupportedType if the extension is unknown.
func Classify(path string, custom []string) (Kind, Origin, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case slices.Contains(imageExts, ext):
		return KindImage, OriginBuiltin, nil
	case slices.Contains(videoExts, ext):
		return KindVideo, OriginBuiltin, nil
	case slices.Contains(textExts, ext):
		return KindText, OriginBuiltin, nil
	case ext != "" && slices.Contains(custom, ext):
		return KindText, OriginCustom, nil
	}
	if ext == "" {
		return "", "", fmt.Errorf("%s has no extension: %w", filepath.Base(path), ErrUnsupportedType)
	}
	return "", "", fmt.Errorf("%s: %w", ext, ErrUnsupportedType)
}
