// internal/mailbox/lock.go
package mailbox

import (
	"context"
	"sync/atomic"
)

// The page lock is an advisory, cooperative signal to the MMC, not a
// mutex: it asks the controller not to swap the page under a
// multi-byte access. A set or clear that fails must never abort the
// main transaction, but the fault is counted and logged rather than
// silently dropped.

// lockIfMultiple sets the page-lock flag before a multi-byte access.
// Single-byte transfers are atomic on the bus and take no lock.
func (s *Session) lockIfMultiple(ctx context.Context, count int) bool {
	if count <= 1 {
		return false
	}

	buf := []byte{s.layout.LockValue}
	if _, err := s.transfer(ctx, dirWrite, int(s.layout.LockOffset), buf); err != nil {
		atomic.AddUint64(&s.controlFaults, 1)
		logger.Warnf("%s: page lock set failed: %v", s.name, err)
	}
	return true
}

// unlockIfLocked clears the page-lock flag, best effort.
func (s *Session) unlockIfLocked(ctx context.Context, locked bool) {
	if !locked {
		return
	}

	buf := []byte{0}
	if _, err := s.transfer(ctx, dirWrite, int(s.layout.LockOffset), buf); err != nil {
		atomic.AddUint64(&s.controlFaults, 1)
		logger.Warnf("%s: page lock clear failed: %v", s.name, err)
	}
}

// ControlFaults returns how many best-effort control-plane writes
// (lock set/clear) have failed since the session was created.
func (s *Session) ControlFaults() uint64 {
	return atomic.LoadUint64(&s.controlFaults)
}
