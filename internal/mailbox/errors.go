// internal/mailbox/errors.go
package mailbox

import "errors"

var (
	// ErrOutOfRange reports an access past the end of the region.
	ErrOutOfRange = errors.New("mailbox: offset/count out of range")

	// ErrZeroWrite reports a zero-length write, which is a caller
	// error. Zero-length reads are a no-op success.
	ErrZeroWrite = errors.New("mailbox: zero-length write")

	// ErrTimeout reports an exhausted per-chunk retry budget.
	ErrTimeout = errors.New("mailbox: transfer timed out")
)
