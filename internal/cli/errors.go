package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.

var (
	// ErrAPIKeyMissing indicates OpenAI is used without an API key.
	ErrAPIKeyMissing = errors.New("OpenAI needs an API key: set AIRENAME_API_KEY or OPENAI_API_KEY")

	// ErrFileNotFound indicates the specified input file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrNoFiles indicates the given paths contain nothing to rename.
	ErrNoFiles = errors.New("no supported files found")

	// ErrRenameFailed indicates at least one file could not be named or renamed.
	ErrRenameFailed = errors.New("some files could not be renamed")
)
