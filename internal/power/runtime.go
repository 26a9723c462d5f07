// internal/power/runtime.go
package power

import "sync/atomic"

// Runtime is the power-management collaborator consulted around every
// mailbox transaction. Resume must return with the device active;
// Release drops the activity reference; Idle hints that the device may
// power down.
type Runtime interface {
	Resume() error
	Release()
	Idle()
}

// Nop is a Runtime for transports with no power management.
type Nop struct{}

func (Nop) Resume() error { return nil }
func (Nop) Release()      {}
func (Nop) Idle()         {}

// Counting tracks the active reference count. It is the Runtime used
// when nothing gates the bus but activity accounting is still wanted.
type Counting struct {
	active int64
}

func (c *Counting) Resume() error {
	atomic.AddInt64(&c.active, 1)
	return nil
}

func (c *Counting) Release() {
	atomic.AddInt64(&c.active, -1)
}

func (c *Counting) Idle() {}

// Active returns the current activity reference count.
func (c *Counting) Active() int64 {
	return atomic.LoadInt64(&c.active)
}
