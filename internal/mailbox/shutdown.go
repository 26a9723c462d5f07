// internal/mailbox/shutdown.go
package mailbox

import "time"

// Poweroff is the shutdown handshake. It tells the MMC that the host
// has finished its power-down sequence, waits for the controller to
// act, and then halts the calling context. It is the last thing the
// host does before power actually drops, so the status write is a
// single raw transfer with no retry loop.
//
// This call never returns under normal operation.
func (s *Session) Poweroff() {
	logger.Infof("%s: sending SHDN_FINISHED to MMC", s.name)

	stat := []byte{s.layout.ShutdownFinished}
	if err := s.tr.BulkWrite(s.layout.StatusOffset, stat); err != nil {
		logger.Warnf("%s: shutdown status write failed: %v", s.name, err)
	}

	time.Sleep(s.settleDelay)

	if s.halt != nil {
		s.halt()
	} else {
		select {}
	}

	// Only an injected halt can fall through to here.
	logger.Errorf("%s: poweroff handshake returned; system should be down", s.name)
}
