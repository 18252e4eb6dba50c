package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrNotFound     = errors.New("employee not found")
	ErrInvalidLimit = errors.New("invalid list limit")
)
