package provider

import "errors"

// ErrUnsupportedKind indicates an unknown provider kind was requested.
var ErrUnsupportedKind = errors.New("unsupported provider")

// ErrEmptyResponse indicates the provider answered without any text.
var ErrEmptyResponse = errors.New("empty response from provider")
