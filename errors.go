package debounce

import "errors"

// ErrInvalidArgument is returned when a Debouncer is constructed with a nil
// function or a negative wait duration.
var ErrInvalidArgument = errors.New("debounce: invalid argument")
