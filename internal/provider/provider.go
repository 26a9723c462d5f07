// internal/provider/provider.go

// Package provider exposes mailbox sessions as named byte-addressable
// storage providers (stride 1, word size 1, read-write) that upstream
// byte-range consumers can look up and drive through io.ReaderAt and
// io.WriterAt.
package provider

import (
	"context"
	"fmt"
	"sync"
)

// Backend is the transactional engine behind a provider.
type Backend interface {
	Read(ctx context.Context, off int, p []byte) error
	Write(ctx context.Context, off int, p []byte) error
	RegionSize() int
}

// Provider is one registered byte-addressable region.
type Provider struct {
	name    string
	backend Backend
}

func (p *Provider) Name() string { return p.name }
func (p *Provider) Size() int    { return p.backend.RegionSize() }

// ReadAt implements io.ReaderAt over the backend. On error the buffer
// may be partially filled; n is reported as zero because the backend
// does not expose partial progress.
func (p *Provider) ReadAt(b []byte, off int64) (int, error) {
	if err := p.backend.Read(context.Background(), int(off), b); err != nil {
		return 0, err
	}
	return len(b), nil
}

// WriteAt implements io.WriterAt over the backend.
func (p *Provider) WriteAt(b []byte, off int64) (int, error) {
	if err := p.backend.Write(context.Background(), int(off), b); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Registry maps provider names to providers.
type Registry struct {
	mu        sync.Mutex
	providers map[string]*Provider
}

// DefaultRegistry is the process-wide provider registry.
var DefaultRegistry = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]*Provider)}
}

// Register adds a named provider. Names are unique.
func (r *Registry) Register(name string, b Backend) (*Provider, error) {
	if name == "" {
		return nil, fmt.Errorf("provider: name required")
	}
	if b == nil {
		return nil, fmt.Errorf("provider: backend required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[name]; ok {
		return nil, fmt.Errorf("provider: %q already registered", name)
	}
	p := &Provider{name: name, backend: b}
	r.providers[name] = p
	return p, nil
}

// Lookup returns the provider registered under name, if any.
func (r *Registry) Lookup(name string) (*Provider, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[name]
	return p, ok
}

// Unregister removes a named provider.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.providers, name)
}
