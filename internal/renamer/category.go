package renamer

import (
	"context"
	"errors"
	"io/fs"

	"github.com/alnah/airename/internal/apierr"
	"github.com/alnah/airename/internal/casing"
	"github.com/alnah/airename/internal/ffmpeg"
	"github.com/alnah/airename/internal/lang"
	"github.com/alnah/airename/internal/provider"
	"github.com/alnah/airename/internal/sanitize"
	"github.com/alnah/airename/internal/source"
)

// Category names the kind of failure behind an error.
type Category string

// Failure categories.
const (
	CategoryNone          Category = ""
	CategoryConfiguration Category = "configuration"
	CategoryInput         Category = "input"
	CategoryTransport     Category = "transport"
	CategoryTimeout       Category = "timeout"
	CategoryProvider      Category = "provider"
	CategoryEmptyResult   Category = "empty-result"
	CategoryConflict      Category = "conflict"
	CategoryCanceled      Category = "canceled"
	CategoryOther         Category = "other"
)

// Categorize returns the category of err, CategoryNone for nil.
func Categorize(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, context.Canceled):
		return CategoryCanceled
	case errors.Is(err, provider.ErrUnsupportedKind),
		errors.Is(err, casing.ErrUnknownStyle),
		errors.Is(err, lang.ErrInvalid),
		errors.Is(err, ErrInvalidMaxChars),
		errors.Is(err, ffmpeg.ErrNotFound):
		return CategoryConfiguration
	case errors.Is(err, apierr.ErrTimeout):
		return CategoryTimeout
	case errors.Is(err, apierr.ErrUnreachable),
		errors.Is(err, apierr.ErrConnectionLost):
		return CategoryTransport
	case errors.Is(err, apierr.ErrProvider),
		errors.Is(err, provider.ErrEmptyResponse):
		return CategoryProvider
	case errors.Is(err, sanitize.ErrEmptyResult):
		return CategoryEmptyResult
	case errors.Is(err, ErrTargetExists),
		errors.Is(err, ErrInvalidTarget):
		return CategoryConflict
	case errors.Is(err, ErrNoContent),
		errors.Is(err, source.ErrUnsupportedType),
		errors.Is(err, source.ErrNoText),
		errors.Is(err, ffmpeg.ErrNoDuration),
		errors.Is(err, ffmpeg.ErrNoFrames),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return CategoryInput
	}
	return CategoryOther
}
