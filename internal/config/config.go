// internal/config/config.go
package config

type Config struct {
	Mailbox MailboxConfig `yaml:"mailbox"`
}

// ---- MAILBOX ----

type MailboxConfig struct {
	Name      string          `yaml:"name"`
	Transport TransportConfig `yaml:"transport"`

	// Region geometry. Zero values take the driver defaults.
	RegionSize int `yaml:"region_size"`
	PageSize   int `yaml:"page_size"`

	// Process-wide IO tunables. io_limit is a pointer so an explicit
	// zero can be told apart from an absent value: absent falls back
	// to the default, zero is rejected.
	IOLimit        *int `yaml:"io_limit"`
	WriteTimeoutMs int  `yaml:"write_timeout_ms"`
}

// ---- TRANSPORT ----

type TransportConfig struct {
	Kind string `yaml:"kind"` // i2c | serial | gateway | mem

	// i2c / serial
	Device string `yaml:"device"`

	// i2c
	Addr uint16 `yaml:"addr"`

	// serial
	Baud int `yaml:"baud"`

	// gateway
	Endpoint string `yaml:"endpoint"`
	UnitID   uint8  `yaml:"unit_id"`

	TimeoutMs int `yaml:"timeout_ms"`
}
