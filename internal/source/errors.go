package source

import "errors"

// ErrUnsupportedType indicates the file extension is neither built in nor a custom type.
var ErrUnsupportedType = errors.New("file type not supported")

// ErrNoText indicates a text file had no usable content.
var ErrNoText = errors.New("no text content found in file")

// ErrInvalidExtension indicates a custom type that is not a usable extension.
var ErrInvalidExtension = errors.New("invalid file extension")
