// internal/mailbox/session.go
package mailbox

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tamzrod/mmc-mailbox/internal/power"
	"github.com/tamzrod/mmc-mailbox/internal/provider"
	"github.com/tamzrod/mmc-mailbox/internal/transport"
	"github.com/tamzrod/mmc-mailbox/internal/utils"
)

var logger = utils.GetLogger("mailbox")

// Config carries the session tunables. Zero values take the package
// defaults; IOLimit is rounded down to a power of two.
type Config struct {
	Name         string
	RegionSize   int
	PageSize     int
	IOLimit      int
	WriteTimeout time.Duration
	Layout       *Layout

	// SettleDelay and Halt tune the shutdown handshake; tests inject
	// both, production leaves them alone.
	SettleDelay time.Duration
	Halt        func()

	// Poweroff, when set, receives the shutdown handshake hook if the
	// slot is still free.
	Poweroff *power.PoweroffRegistry

	// Providers, when set, gets the session registered under Name as
	// a byte-addressable provider.
	Providers *provider.Registry
}

// Session is one attached mailbox region.
//
// The mutex protects against activities from other callers in this
// process, but not from changes by other bus masters; that is what the
// advisory page lock is for.
type Session struct {
	mu sync.Mutex

	tr transport.Transport
	pm power.Runtime

	name         string
	region       int
	pageSize     int
	writeMax     int
	ioLimit      int
	writeTimeout time.Duration
	layout       Layout

	settleDelay time.Duration
	halt        func()
	poweroff    *power.PoweroffRegistry
	providers   *provider.Registry

	controlFaults uint64
}

// New creates a session, probes the device with a one-byte read,
// registers it as a provider when a registry is configured and, if the
// poweroff slot is free, installs the shutdown handshake.
func New(tr transport.Transport, pm power.Runtime, cfg Config) (*Session, error) {
	if cfg.Name == "" {
		cfg.Name = "mmcmailbox"
	}
	if cfg.RegionSize == 0 {
		cfg.RegionSize = DefaultRegionSize
	}
	if cfg.PageSize == 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.IOLimit == 0 {
		cfg.IOLimit = DefaultIOLimit
	}
	if cfg.WriteTimeout == 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if pm == nil {
		pm = power.Nop{}
	}

	layout := DefaultLayout
	if cfg.Layout != nil {
		layout = *cfg.Layout
	}

	if cfg.PageSize < 0 {
		return nil, fmt.Errorf("mailbox: page size %d must be positive", cfg.PageSize)
	}
	if cfg.IOLimit < 0 {
		return nil, fmt.Errorf("mailbox: io limit %d must be positive", cfg.IOLimit)
	}
	// Forced to a power of two so that writes align on pages.
	cfg.IOLimit = RoundDownPowerOfTwo(cfg.IOLimit)
	if !IsPowerOfTwo(cfg.PageSize) {
		logger.Warnf("%s: page size %d looks suspicious (no power of 2)", cfg.Name, cfg.PageSize)
	}
	if cfg.RegionSize <= int(layout.LockOffset) || cfg.RegionSize <= int(layout.StatusOffset) {
		return nil, fmt.Errorf("mailbox: region size %d does not cover control bytes", cfg.RegionSize)
	}

	writeMax := cfg.PageSize
	if writeMax > cfg.IOLimit {
		writeMax = cfg.IOLimit
	}
	if lim, ok := tr.(transport.Limiter); ok && lim.MaxTransfer() > 0 && writeMax > lim.MaxTransfer() {
		writeMax = lim.MaxTransfer()
	}

	s := &Session{
		tr:           tr,
		pm:           pm,
		name:         cfg.Name,
		region:       cfg.RegionSize,
		pageSize:     cfg.PageSize,
		writeMax:     writeMax,
		ioLimit:      cfg.IOLimit,
		writeTimeout: cfg.WriteTimeout,
		layout:       layout,
		settleDelay:  cfg.SettleDelay,
		halt:         cfg.Halt,
		poweroff:     cfg.Poweroff,
	}

	// One-byte test read to verify that the device is functional.
	var probe [1]byte
	if err := s.Read(context.Background(), 0, probe[:]); err != nil {
		return nil, fmt.Errorf("mailbox: probe read: %w", err)
	}
	pm.Idle()

	logger.Infof("%s: %d byte mailbox, %d bytes/write", s.name, s.region, s.writeMax)

	if cfg.Providers != nil {
		if _, err := cfg.Providers.Register(s.name, s); err != nil {
			return nil, fmt.Errorf("mailbox: %w", err)
		}
		s.providers = cfg.Providers
	}

	if s.poweroff != nil {
		if !s.poweroff.TryRegister(s.name, s.Poweroff) {
			logger.Errorf("%s: poweroff hook already registered by %q", s.name, s.poweroff.Owner())
		}
	}

	return s, nil
}

// RegionSize returns the total addressable bytes.
func (s *Session) RegionSize() int { return s.region }

// Close withdraws the provider registration and releases the poweroff
// slot if this session still owns it.
func (s *Session) Close() error {
	if s.providers != nil {
		s.providers.Unregister(s.name)
	}
	if s.poweroff != nil {
		s.poweroff.UnregisterIfOwner(s.name)
	}
	return nil
}

// Read fills p from the mailbox starting at off. A zero-length read is
// a no-op success. On error p is filled up to the last good chunk;
// callers must not assume atomicity across chunks.
func (s *Session) Read(ctx context.Context, off int, p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if off < 0 || off+len(p) > s.region {
		return ErrOutOfRange
	}

	if err := s.pm.Resume(); err != nil {
		s.pm.Release()
		return fmt.Errorf("mailbox: resume: %w", err)
	}

	s.mu.Lock()
	locked := s.lockIfMultiple(ctx, len(p))

	buf := p
	for len(buf) > 0 {
		n, err := s.transfer(ctx, dirRead, off, buf)
		if err != nil {
			s.unlockIfLocked(ctx, locked)
			s.mu.Unlock()
			s.pm.Release()
			return err
		}
		buf = buf[n:]
		off += n
	}

	s.unlockIfLocked(ctx, locked)
	s.mu.Unlock()

	s.pm.Release()
	return nil
}

// Write stores p into the mailbox starting at off. A zero-length write
// is a caller error, unlike read. Chunks never cross a page boundary.
func (s *Session) Write(ctx context.Context, off int, p []byte) error {
	if len(p) == 0 {
		return ErrZeroWrite
	}
	if off < 0 || off+len(p) > s.region {
		return ErrOutOfRange
	}

	if err := s.pm.Resume(); err != nil {
		s.pm.Release()
		return fmt.Errorf("mailbox: resume: %w", err)
	}

	s.mu.Lock()
	locked := s.lockIfMultiple(ctx, len(p))

	buf := p
	for len(buf) > 0 {
		n, err := s.transfer(ctx, dirWrite, off, buf)
		if err != nil {
			s.unlockIfLocked(ctx, locked)
			s.mu.Unlock()
			s.pm.Release()
			return err
		}
		buf = buf[n:]
		off += n
	}

	s.unlockIfLocked(ctx, locked)
	s.mu.Unlock()

	s.pm.Release()
	return nil
}
