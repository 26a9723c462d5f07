// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/mmc-mailbox/internal/mailbox"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	mb := &cfg.Mailbox

	// ------------------------------------------------------------
	// IO TUNABLES
	// ------------------------------------------------------------

	// An explicit zero is a configuration error; only an absent
	// value falls back to the default.
	if mb.IOLimit != nil && *mb.IOLimit <= 0 {
		return fmt.Errorf("mailbox: io_limit must not be 0")
	}
	if mb.PageSize < 0 {
		return fmt.Errorf("mailbox: page_size %d must not be negative", mb.PageSize)
	}
	if mb.WriteTimeoutMs < 0 {
		return fmt.Errorf("mailbox: write_timeout_ms %d must not be negative", mb.WriteTimeoutMs)
	}
	if mb.RegionSize < 0 {
		return fmt.Errorf("mailbox: region_size %d must not be negative", mb.RegionSize)
	}

	// ------------------------------------------------------------
	// REGION GEOMETRY
	// ------------------------------------------------------------

	region := mb.RegionSize
	if region == 0 {
		region = mailbox.DefaultRegionSize
	}
	if region <= int(mailbox.DefaultLayout.LockOffset) || region <= int(mailbox.DefaultLayout.StatusOffset) {
		return fmt.Errorf(
			"mailbox: region_size %d does not cover the control bytes at %d/%d",
			region,
			mailbox.DefaultLayout.StatusOffset,
			mailbox.DefaultLayout.LockOffset,
		)
	}

	// ------------------------------------------------------------
	// TRANSPORT
	// ------------------------------------------------------------

	tc := &mb.Transport
	switch tc.Kind {
	case "i2c":
		if tc.Device == "" {
			return fmt.Errorf("transport: i2c requires device")
		}
		if tc.Addr == 0 || tc.Addr > 0x7F {
			return fmt.Errorf("transport: i2c addr 0x%02x out of 7-bit range", tc.Addr)
		}
	case "serial":
		if tc.Device == "" {
			return fmt.Errorf("transport: serial requires device")
		}
	case "gateway":
		if tc.Endpoint == "" {
			return fmt.Errorf("transport: gateway requires endpoint")
		}
	case "mem":
		// Nothing to check: simulated region, sized from region_size.
	case "":
		return fmt.Errorf("transport: kind required")
	default:
		return fmt.Errorf("transport: unknown kind %q", tc.Kind)
	}

	if tc.TimeoutMs < 0 {
		return fmt.Errorf("transport: timeout_ms %d must not be negative", tc.TimeoutMs)
	}

	return nil
}
