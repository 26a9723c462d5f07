// internal/transport/gateway.go
package transport

import (
	"fmt"
	"sync"
	"time"

	"github.com/goburrow/modbus"
	"github.com/pkg/errors"
)

// Gateway reaches the mailbox through a Modbus TCP register bridge that
// maps one mailbox byte per holding register (value in the low byte).
// It serializes requests because the handler is not concurrency-safe.
type Gateway struct {
	mu      sync.Mutex
	handler *modbus.TCPClientHandler
	client  modbus.Client
}

type GatewayConfig struct {
	Endpoint string
	UnitID   uint8
	Timeout  time.Duration
}

// Modbus caps a single transaction at 125 registers read, 123 written.
const gatewayMaxTransfer = 123

// NewGateway creates a connected Modbus TCP transport.
func NewGateway(cfg GatewayConfig) (*Gateway, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("gateway transport: endpoint required")
	}

	h := modbus.NewTCPClientHandler(cfg.Endpoint)
	h.Timeout = cfg.Timeout
	h.SlaveId = cfg.UnitID

	if err := h.Connect(); err != nil {
		return nil, errors.Wrapf(err, "gateway transport: connect %s", cfg.Endpoint)
	}

	return &Gateway{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.handler.Close()
}

func (g *Gateway) MaxTransfer() int { return gatewayMaxTransfer }

// BulkRead splits oversized transfers itself: engine read chunking is
// capped by the IO limit, not MaxTransfer, and a 128-register read is
// already over the Modbus per-request quantity cap.
func (g *Gateway) BulkRead(offset uint16, buf []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for len(buf) > 0 {
		n := len(buf)
		if n > gatewayMaxTransfer {
			n = gatewayMaxTransfer
		}

		raw, err := g.client.ReadHoldingRegisters(offset, uint16(n))
		if err != nil {
			return fmt.Errorf("gateway transport: read %d@%d: %w", n, offset, err)
		}
		if len(raw) != 2*n {
			return fmt.Errorf("gateway transport: short read payload: got=%d want=%d", len(raw), 2*n)
		}
		for i := 0; i < n; i++ {
			buf[i] = raw[2*i+1] // low byte carries the mailbox byte
		}

		buf = buf[n:]
		offset += uint16(n)
	}
	return nil
}

func (g *Gateway) BulkWrite(offset uint16, buf []byte) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	for len(buf) > 0 {
		n := len(buf)
		if n > gatewayMaxTransfer {
			n = gatewayMaxTransfer
		}

		values := make([]byte, 2*n)
		for i := 0; i < n; i++ {
			values[2*i+1] = buf[i]
		}
		if _, err := g.client.WriteMultipleRegisters(offset, uint16(n), values); err != nil {
			return fmt.Errorf("gateway transport: write %d@%d: %w", n, offset, err)
		}

		buf = buf[n:]
		offset += uint16(n)
	}
	return nil
}
