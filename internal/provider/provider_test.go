// internal/provider/provider_test.go
package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memBackend is a plain byte array backend; the engine semantics are
// tested in the mailbox package.
type memBackend struct {
	data []byte
}

func (m *memBackend) Read(_ context.Context, off int, p []byte) error {
	copy(p, m.data[off:])
	return nil
}

func (m *memBackend) Write(_ context.Context, off int, p []byte) error {
	copy(m.data[off:], p)
	return nil
}

func (m *memBackend) RegionSize() int { return len(m.data) }

func TestRegistryOwnership(t *testing.T) {
	r := NewRegistry()
	b := &memBackend{data: make([]byte, 64)}

	p, err := r.Register("mb0", b)
	require.NoError(t, err)
	assert.Equal(t, "mb0", p.Name())
	assert.Equal(t, 64, p.Size())

	_, err = r.Register("mb0", b)
	require.Error(t, err)

	got, ok := r.Lookup("mb0")
	require.True(t, ok)
	assert.Same(t, p, got)

	r.Unregister("mb0")
	_, ok = r.Lookup("mb0")
	assert.False(t, ok)
}

func TestRegisterRejectsBadArgs(t *testing.T) {
	r := NewRegistry()

	_, err := r.Register("", &memBackend{data: make([]byte, 1)})
	require.Error(t, err)

	_, err = r.Register("mb0", nil)
	require.Error(t, err)
}

func TestReadAtWriteAt(t *testing.T) {
	r := NewRegistry()
	b := &memBackend{data: make([]byte, 64)}

	p, err := r.Register("mb0", b)
	require.NoError(t, err)

	n, err := p.WriteAt([]byte("handshake"), 8)
	require.NoError(t, err)
	assert.Equal(t, 9, n)

	buf := make([]byte, 9)
	n, err = p.ReadAt(buf, 8)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, "handshake", string(buf))
}
