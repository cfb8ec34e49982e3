package sanitize

import "errors"

// ErrEmptyResult indicates nothing usable was left after cleaning a model response.
var ErrEmptyResult = errors.New("no usable filename in model response")
