package renamer

import "errors"

var (
	// ErrInvalidMaxChars indicates a non-positive filename length budget.
	ErrInvalidMaxChars = errors.New("max chars must be positive")

	// ErrNoContent indicates a request with neither text nor images.
	ErrNoContent = errors.New("no content to describe")

	// ErrTargetExists indicates the rename target is already taken.
	ErrTargetExists = errors.New("target already exists")

	// ErrInvalidTarget indicates a generated name that cannot be used in place,
	// such as one containing a path separator.
	ErrInvalidTarget = errors.New("invalid target name")
)
