// internal/power/poweroff_test.go
package power

import "testing"

func TestPoweroffRegistryFirstWins(t *testing.T) {
	reg := &PoweroffRegistry{}

	ran := ""
	if !reg.TryRegister("a", func() { ran = "a" }) {
		t.Fatalf("first registration should succeed")
	}
	if reg.TryRegister("b", func() { ran = "b" }) {
		t.Fatalf("second registration should be refused")
	}
	if reg.Owner() != "a" {
		t.Fatalf("owner=%q want a", reg.Owner())
	}

	reg.Invoke()
	if ran != "a" {
		t.Fatalf("invoked hook %q, want a", ran)
	}
}

func TestPoweroffRegistryUnregisterIfOwner(t *testing.T) {
	reg := &PoweroffRegistry{}
	reg.TryRegister("a", func() {})

	reg.UnregisterIfOwner("b")
	if reg.Owner() != "a" {
		t.Fatalf("non-owner must not clear the slot")
	}

	reg.UnregisterIfOwner("a")
	if reg.Owner() != "" {
		t.Fatalf("owner unregister must clear the slot")
	}

	if !reg.TryRegister("b", func() {}) {
		t.Fatalf("slot should be free again")
	}
}

func TestInvokeEmptyRegistry(t *testing.T) {
	reg := &PoweroffRegistry{}
	reg.Invoke() // must not panic
}

func TestCountingRuntime(t *testing.T) {
	var c Counting

	if err := c.Resume(); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if c.Active() != 1 {
		t.Fatalf("active=%d want 1", c.Active())
	}
	c.Release()
	if c.Active() != 0 {
		t.Fatalf("active=%d want 0", c.Active())
	}
}
