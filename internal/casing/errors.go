package casing

import "errors"

// ErrUnknownStyle indicates an unsupported case style was requested.
var ErrUnknownStyle = errors.New("unknown case style")
