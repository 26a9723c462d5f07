// internal/transport/serial.go
package transport

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
)

// Serial reaches the mailbox through a framed register bridge on a
// serial port. One request/response pair per transfer, serialized on
// the port.
type Serial struct {
	mu   sync.Mutex
	port serial.Port
}

type SerialConfig struct {
	Device  string
	Baud    int
	Timeout time.Duration
}

// NewSerial opens the bridge port.
func NewSerial(cfg SerialConfig) (*Serial, error) {
	if cfg.Device == "" {
		return nil, errors.New("serial transport: device required")
	}
	if cfg.Baud <= 0 {
		cfg.Baud = 115200
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Second
	}

	port, err := serial.Open(cfg.Device, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, errors.Wrapf(err, "serial transport: open %s", cfg.Device)
	}
	if err := port.SetReadTimeout(cfg.Timeout); err != nil {
		_ = port.Close()
		return nil, errors.Wrap(err, "serial transport: set read timeout")
	}

	return &Serial{port: port}, nil
}

func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.port.Close()
}

func (s *Serial) BulkRead(offset uint16, buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := buildFrameV1(opRead, offset, uint16(len(buf)), nil)
	if err := writeAll(s.port, req); err != nil {
		return fmt.Errorf("serial transport: write request: %w", err)
	}

	var status [1]byte
	if _, err := io.ReadFull(s.port, status[:]); err != nil {
		return fmt.Errorf("serial transport: read status: %w", err)
	}
	if err := checkStatus(status[0]); err != nil {
		return err
	}
	if _, err := io.ReadFull(s.port, buf); err != nil {
		return fmt.Errorf("serial transport: read payload: %w", err)
	}
	return nil
}

func (s *Serial) BulkWrite(offset uint16, buf []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	req := buildFrameV1(opWrite, offset, uint16(len(buf)), buf)
	if err := writeAll(s.port, req); err != nil {
		return fmt.Errorf("serial transport: write request: %w", err)
	}

	var status [1]byte
	if _, err := io.ReadFull(s.port, status[:]); err != nil {
		return fmt.Errorf("serial transport: read status: %w", err)
	}
	return checkStatus(status[0])
}

func checkStatus(b byte) error {
	switch b {
	case respOK:
		return nil
	case respRejected:
		return errors.New("serial transport: rejected")
	default:
		return fmt.Errorf("serial transport: unknown status 0x%02x", b)
	}
}

func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
