// internal/transport/mem.go
package transport

import (
	"fmt"
	"sync"
)

// Mem is an in-memory mailbox image. It backs the `mem` transport kind
// for dry runs and is the recording fake used across the engine tests.
type Mem struct {
	mu    sync.Mutex
	image []byte

	// Fault injection: FailNext fails that many transfers before
	// recovering, FailAll fails every transfer.
	FailNext int
	FailAll  bool

	calls []Call
}

// Call is one recorded transfer.
type Call struct {
	Dir    string // "r" or "w"
	Offset uint16
	Count  int
	Err    bool
}

// NewMem creates a zero-filled in-memory mailbox of the given size.
func NewMem(size int) *Mem {
	return &Mem{image: make([]byte, size)}
}

func (m *Mem) BulkRead(offset uint16, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault(); err != nil {
		m.calls = append(m.calls, Call{Dir: "r", Offset: offset, Count: len(buf), Err: true})
		return err
	}
	if int(offset)+len(buf) > len(m.image) {
		m.calls = append(m.calls, Call{Dir: "r", Offset: offset, Count: len(buf), Err: true})
		return fmt.Errorf("mem transport: read %d@%d beyond %d bytes", len(buf), offset, len(m.image))
	}
	copy(buf, m.image[offset:int(offset)+len(buf)])
	m.calls = append(m.calls, Call{Dir: "r", Offset: offset, Count: len(buf)})
	return nil
}

func (m *Mem) BulkWrite(offset uint16, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.fault(); err != nil {
		m.calls = append(m.calls, Call{Dir: "w", Offset: offset, Count: len(buf), Err: true})
		return err
	}
	if int(offset)+len(buf) > len(m.image) {
		m.calls = append(m.calls, Call{Dir: "w", Offset: offset, Count: len(buf), Err: true})
		return fmt.Errorf("mem transport: write %d@%d beyond %d bytes", len(buf), offset, len(m.image))
	}
	copy(m.image[offset:], buf)
	m.calls = append(m.calls, Call{Dir: "w", Offset: offset, Count: len(buf)})
	return nil
}

func (m *Mem) Close() error { return nil }

func (m *Mem) fault() error {
	if m.FailAll {
		return fmt.Errorf("mem transport: injected failure")
	}
	if m.FailNext > 0 {
		m.FailNext--
		return fmt.Errorf("mem transport: injected failure")
	}
	return nil
}

// Calls returns a copy of the recorded transfer log.
func (m *Mem) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// ResetCalls clears the transfer log but keeps the image.
func (m *Mem) ResetCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Peek returns a copy of n bytes at offset, bypassing fault injection.
func (m *Mem) Peek(offset, n int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]byte, n)
	copy(out, m.image[offset:offset+n])
	return out
}

// Poke writes raw bytes at offset, bypassing fault injection.
func (m *Mem) Poke(offset int, b []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copy(m.image[offset:], b)
}
