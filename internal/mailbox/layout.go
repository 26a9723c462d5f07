// internal/mailbox/layout.go
package mailbox

import "time"

// Layout describes the fixed control bytes of the mailbox region.
// These values define the device protocol and MUST NOT be scattered
// through the transaction logic as literals.
type Layout struct {
	// LockOffset holds the page-lock flag. Setting LockValue there
	// asks the MMC not to swap the page during a multi-byte access.
	LockOffset uint16
	LockValue  byte

	// StatusOffset holds the FPGA status byte; ShutdownFinished is the
	// bit written there when the host has finished powering down.
	StatusOffset     uint16
	ShutdownFinished byte
}

// DefaultLayout matches the DMMC-STAMP mailbox register map.
var DefaultLayout = Layout{
	LockOffset:       2047,
	LockValue:        0x01,
	StatusOffset:     2046,
	ShutdownFinished: 1 << 2,
}

// Process-wide defaults for session tunables.
const (
	// DefaultRegionSize is the addressable mailbox size in bytes.
	DefaultRegionSize = 16384 / 8

	// DefaultPageSize is the page boundary writes must not cross.
	DefaultPageSize = 16

	// DefaultIOLimit caps bytes per bus transaction so one access
	// cannot hog the bus. Forced to a power of two so writes align
	// on pages.
	DefaultIOLimit = 128

	// DefaultWriteTimeout bounds the retry budget of one transfer.
	DefaultWriteTimeout = 25 * time.Millisecond

	// DefaultSettleDelay gives the MMC time to observe the shutdown
	// flag before power actually drops.
	DefaultSettleDelay = time.Second
)
