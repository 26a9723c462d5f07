// cmd/mailboxctl/session.go
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tamzrod/mmc-mailbox/internal/config"
	"github.com/tamzrod/mmc-mailbox/internal/mailbox"
	"github.com/tamzrod/mmc-mailbox/internal/power"
	"github.com/tamzrod/mmc-mailbox/internal/provider"
	"github.com/tamzrod/mmc-mailbox/internal/transport"
)

// openSession loads the config and builds the transport and session.
// The returned closer tears both down.
func openSession(c *cli.Context) (*mailbox.Session, func(), error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}
	config.Normalize(cfg)

	tr, err := buildTransport(cfg)
	if err != nil {
		return nil, nil, err
	}

	pm := &power.Counting{}

	sess, err := mailbox.New(tr, pm, mailbox.Config{
		Name:         cfg.Mailbox.Name,
		RegionSize:   cfg.Mailbox.RegionSize,
		PageSize:     cfg.Mailbox.PageSize,
		IOLimit:      cfg.Mailbox.GetIOLimit(),
		WriteTimeout: time.Duration(cfg.Mailbox.WriteTimeoutMs) * time.Millisecond,
		Poweroff:     power.DefaultPoweroff,
		Providers:    provider.DefaultRegistry,
	})
	if err != nil {
		_ = tr.Close()
		return nil, nil, err
	}

	closer := func() {
		_ = sess.Close()
		_ = tr.Close()
	}
	return sess, closer, nil
}

func buildTransport(cfg *config.Config) (transport.Transport, error) {
	tc := cfg.Mailbox.Transport
	timeout := time.Duration(tc.TimeoutMs) * time.Millisecond

	switch tc.Kind {
	case "i2c":
		return transport.NewI2C(tc.Device, tc.Addr)
	case "serial":
		return transport.NewSerial(transport.SerialConfig{
			Device:  tc.Device,
			Baud:    tc.Baud,
			Timeout: timeout,
		})
	case "gateway":
		return transport.NewGateway(transport.GatewayConfig{
			Endpoint: tc.Endpoint,
			UnitID:   tc.UnitID,
			Timeout:  timeout,
		})
	case "mem":
		size := cfg.Mailbox.RegionSize
		if size == 0 {
			size = mailbox.DefaultRegionSize
		}
		return transport.NewMem(size), nil
	default:
		return nil, fmt.Errorf("transport: unknown kind %q", tc.Kind)
	}
}

// parseNum accepts decimal, hex (0x...) and octal offsets.
func parseNum(s string) (int, error) {
	v, err := strconv.ParseUint(s, 0, 31)
	if err != nil {
		return 0, fmt.Errorf("bad number %q: %w", s, err)
	}
	return int(v), nil
}
