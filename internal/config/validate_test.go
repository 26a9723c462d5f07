// internal/config/validate_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memConfig() *Config {
	return &Config{
		Mailbox: MailboxConfig{
			Name:      "mb",
			Transport: TransportConfig{Kind: "mem"},
		},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	require.NoError(t, Validate(memConfig()))
}

func TestValidateTransportKinds(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "missing kind",
			mutate:  func(c *Config) { c.Mailbox.Transport.Kind = "" },
			wantErr: "kind required",
		},
		{
			name:    "unknown kind",
			mutate:  func(c *Config) { c.Mailbox.Transport.Kind = "pigeon" },
			wantErr: "unknown kind",
		},
		{
			name:    "i2c without device",
			mutate:  func(c *Config) { c.Mailbox.Transport.Kind = "i2c"; c.Mailbox.Transport.Addr = 0x50 },
			wantErr: "i2c requires device",
		},
		{
			name: "i2c address out of range",
			mutate: func(c *Config) {
				c.Mailbox.Transport.Kind = "i2c"
				c.Mailbox.Transport.Device = "/dev/i2c-1"
				c.Mailbox.Transport.Addr = 0x90
			},
			wantErr: "7-bit range",
		},
		{
			name:    "serial without device",
			mutate:  func(c *Config) { c.Mailbox.Transport.Kind = "serial" },
			wantErr: "serial requires device",
		},
		{
			name:    "gateway without endpoint",
			mutate:  func(c *Config) { c.Mailbox.Transport.Kind = "gateway" },
			wantErr: "gateway requires endpoint",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := memConfig()
			tc.mutate(cfg)
			err := Validate(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestValidateIOLimit(t *testing.T) {
	cfg := memConfig()
	zero := 0
	cfg.Mailbox.IOLimit = &zero
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "io_limit")

	// Absent io_limit is fine: the driver default applies.
	require.NoError(t, Validate(memConfig()))
}

func TestValidateRegionCoversControlBytes(t *testing.T) {
	cfg := memConfig()
	cfg.Mailbox.RegionSize = 1024
	err := Validate(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "control bytes")
}

func TestNormalizeRoundsIOLimitDown(t *testing.T) {
	cfg := memConfig()
	v := 100
	cfg.Mailbox.IOLimit = &v

	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	assert.Equal(t, 64, *cfg.Mailbox.IOLimit)
	assert.Equal(t, 64, cfg.Mailbox.GetIOLimit())
}

func TestNormalizeDefaults(t *testing.T) {
	cfg := memConfig()
	cfg.Mailbox.Transport.Kind = "serial"
	cfg.Mailbox.Transport.Device = "/dev/ttyUSB0"

	require.NoError(t, Validate(cfg))
	Normalize(cfg)

	assert.Equal(t, 2000, cfg.Mailbox.Transport.TimeoutMs)
	assert.Equal(t, 115200, cfg.Mailbox.Transport.Baud)
	assert.Equal(t, 128, cfg.Mailbox.GetIOLimit())
}

func TestLoadRoundTrip(t *testing.T) {
	raw := `
mailbox:
  name: stamp0
  region_size: 2048
  page_size: 16
  io_limit: 128
  write_timeout_ms: 25
  transport:
    kind: i2c
    device: /dev/i2c-1
    addr: 0x50
`
	path := filepath.Join(t.TempDir(), "mailbox.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "stamp0", cfg.Mailbox.Name)
	assert.Equal(t, 2048, cfg.Mailbox.RegionSize)
	assert.Equal(t, 16, cfg.Mailbox.PageSize)
	require.NotNil(t, cfg.Mailbox.IOLimit)
	assert.Equal(t, 128, *cfg.Mailbox.IOLimit)
	assert.Equal(t, "i2c", cfg.Mailbox.Transport.Kind)
	assert.Equal(t, uint16(0x50), cfg.Mailbox.Transport.Addr)

	require.NoError(t, Validate(cfg))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
