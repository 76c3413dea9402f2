package array

import "errors"

// ErrNegativeSize is returned by New when the requested size is negative.
var ErrNegativeSize = errors.New("array: negative size")
