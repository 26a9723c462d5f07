// internal/transport/transport.go
package transport

// Transport is the raw register-mapped bus primitive the engine drives.
// Offsets are 16-bit register addresses, data granularity is 8 bit.
// Implementations transfer the whole buffer or fail; no short transfers.
type Transport interface {
	// BulkRead fills buf with len(buf) bytes starting at offset.
	BulkRead(offset uint16, buf []byte) error
	// BulkWrite writes len(buf) bytes from buf starting at offset.
	BulkWrite(offset uint16, buf []byte) error

	Close() error
}

// Limiter is an optional capability hint. A transport that cannot move
// more than N bytes per transaction reports it here and the session
// clamps its write chunking accordingly.
type Limiter interface {
	MaxTransfer() int
}
