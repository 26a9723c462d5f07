// internal/power/poweroff.go
package power

import "sync"

// PoweroffRegistry is a single-slot registry for the system poweroff
// hook. First registrant wins; a later registrant is refused and keeps
// running without a hook. Ownership is tracked by name so teardown can
// release the slot only when it still owns it.
type PoweroffRegistry struct {
	mu    sync.Mutex
	owner string
	hook  func()
}

// DefaultPoweroff is the process-wide registry.
var DefaultPoweroff = &PoweroffRegistry{}

// TryRegister installs fn as the poweroff hook if the slot is free.
// Returns false when another owner already holds the slot.
func (r *PoweroffRegistry) TryRegister(owner string, fn func()) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.hook != nil {
		return false
	}
	r.owner = owner
	r.hook = fn
	return true
}

// UnregisterIfOwner clears the slot if owner still holds it.
// A slot held by someone else is left untouched.
func (r *PoweroffRegistry) UnregisterIfOwner(owner string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.owner == owner {
		r.owner = ""
		r.hook = nil
	}
}

// Owner returns the current slot owner, or "" when free.
func (r *PoweroffRegistry) Owner() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.owner
}

// Invoke runs the registered hook, if any. Under normal operation a
// mailbox hook never returns.
func (r *PoweroffRegistry) Invoke() {
	r.mu.Lock()
	fn := r.hook
	r.mu.Unlock()

	if fn != nil {
		fn()
	}
}
