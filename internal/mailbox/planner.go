// internal/mailbox/planner.go
package mailbox

// Chunk planning is pure geometry: no IO, no state.

// adjustReadCount caps one bus read at the process-wide IO limit.
// Reads need no page alignment.
func adjustReadCount(count, ioLimit int) int {
	if count > ioLimit {
		count = ioLimit
	}
	return count
}

// adjustWriteCount plans the next write chunk. writeMax is at most a
// page. The chunk never crosses the next page boundary and never rolls
// over backwards to the start of this page.
func adjustWriteCount(offset, count, pageSize, writeMax int) int {
	if count > writeMax {
		count = writeMax
	}

	nextPage := roundUp(offset+1, pageSize)
	if offset+count > nextPage {
		count = nextPage - offset
	}

	return count
}

func roundUp(n, multiple int) int {
	return ((n + multiple - 1) / multiple) * multiple
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// RoundDownPowerOfTwo returns the largest power of two not above n.
// n must be positive.
func RoundDownPowerOfTwo(n int) int {
	p := 1
	for p<<1 <= n {
		p <<= 1
	}
	return p
}
