// internal/mailbox/transfer.go
package mailbox

import (
	"context"
	"math/rand"
	"time"
)

type xferDir int

const (
	dirRead xferDir = iota
	dirWrite
)

func (d xferDir) String() string {
	if d == dirWrite {
		return "write"
	}
	return "read"
}

// Retry backoff between attempts, randomized to avoid lockstep with
// the MMC's own mailbox activity.
const (
	backoffMin = 1000 * time.Microsecond
	backoffMax = 1500 * time.Microsecond
)

// transfer plans and performs one bus transaction with a bounded retry
// loop, returning the number of bytes moved. Every transport error is
// retried identically until the budget runs out; the design does not
// try to tell transient from permanent failures.
func (s *Session) transfer(ctx context.Context, dir xferDir, offset int, buf []byte) (int, error) {
	var n int
	switch dir {
	case dirWrite:
		n = adjustWriteCount(offset, len(buf), s.pageSize, s.writeMax)
	default:
		n = adjustReadCount(len(buf), s.ioLimit)
	}
	chunk := buf[:n]

	deadline := time.Now().Add(s.writeTimeout)
	for {
		// The timestamp shall be taken before the actual operation
		// to avoid a premature timeout in case of high CPU load.
		attempt := time.Now()

		var err error
		if dir == dirWrite {
			err = s.tr.BulkWrite(uint16(offset), chunk)
		} else {
			err = s.tr.BulkRead(uint16(offset), chunk)
		}
		logger.Debugf("%s %d@%d --> %v", dir, n, offset, err)
		if err == nil {
			return n, nil
		}

		if err := sleepBackoff(ctx); err != nil {
			return 0, err
		}
		if !attempt.Before(deadline) {
			return 0, ErrTimeout
		}
	}
}

func sleepBackoff(ctx context.Context) error {
	d := backoffMin + time.Duration(rand.Int63n(int64(backoffMax-backoffMin)))
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
