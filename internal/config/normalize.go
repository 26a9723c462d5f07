// internal/config/normalize.go
package config

import "github.com/tamzrod/mmc-mailbox/internal/mailbox"

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	mb := &cfg.Mailbox

	// ------------------------------------------------------------
	// IO LIMIT NORMALIZATION
	// ------------------------------------------------------------

	// Rounded down to a power of two so writes align on pages.
	// Positivity was already validated.
	if mb.IOLimit != nil {
		v := mailbox.RoundDownPowerOfTwo(*mb.IOLimit)
		mb.IOLimit = &v
	}

	// ------------------------------------------------------------
	// TRANSPORT DEFAULTS
	// ------------------------------------------------------------

	tc := &mb.Transport
	if tc.TimeoutMs == 0 {
		tc.TimeoutMs = 2000
	}
	if tc.Kind == "serial" && tc.Baud == 0 {
		tc.Baud = 115200
	}
}

// IOLimit returns the configured IO limit or the driver default.
func (m *MailboxConfig) GetIOLimit() int {
	if m.IOLimit == nil {
		return mailbox.DefaultIOLimit
	}
	return *m.IOLimit
}
