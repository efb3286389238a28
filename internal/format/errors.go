package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a header.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrMisaligned indicates an offset or size that is not a multiple of Align.
	ErrMisaligned = errors.New("format: misaligned offset")
)
