// internal/transport/i2c_linux.go
package transport

import (
	"runtime"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Linux i2c-dev userspace interface. Only the pieces needed for
// combined-transaction register access are declared here.
const (
	i2cRdwr    = 0x0707 // ioctl: combined read/write transfer
	i2cMsgRd   = 0x0001 // i2c_msg flag: read direction
	i2cRdwrMax = 2
)

type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	_     uint16
	buf   uintptr
}

type i2cRdwrData struct {
	msgs  uintptr
	nmsgs uint32
}

// I2C talks to the mailbox through a Linux /dev/i2c-N character device
// using combined transactions: a 2-byte big-endian register offset
// followed by the data phase.
type I2C struct {
	fd   int
	addr uint16
}

// NewI2C opens the i2c-dev node and targets the given 7-bit address.
func NewI2C(device string, addr uint16) (*I2C, error) {
	fd, err := unix.Open(device, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "i2c transport: open %s", device)
	}
	return &I2C{fd: fd, addr: addr}, nil
}

func (c *I2C) Close() error {
	return unix.Close(c.fd)
}

func (c *I2C) BulkRead(offset uint16, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	reg := [2]byte{byte(offset >> 8), byte(offset)}
	msgs := [i2cRdwrMax]i2cMsg{
		{addr: c.addr, len: 2, buf: uintptr(unsafe.Pointer(&reg[0]))},
		{addr: c.addr, flags: i2cMsgRd, len: uint16(len(buf)), buf: uintptr(unsafe.Pointer(&buf[0]))},
	}
	err := c.rdwr(msgs[:])
	// The buffers are referenced only through uintptr fields; keep
	// them live until the ioctl has returned.
	runtime.KeepAlive(&reg)
	runtime.KeepAlive(buf)
	return err
}

func (c *I2C) BulkWrite(offset uint16, buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	out := make([]byte, 2+len(buf))
	out[0] = byte(offset >> 8)
	out[1] = byte(offset)
	copy(out[2:], buf)
	msgs := []i2cMsg{
		{addr: c.addr, len: uint16(len(out)), buf: uintptr(unsafe.Pointer(&out[0]))},
	}
	err := c.rdwr(msgs)
	runtime.KeepAlive(out)
	return err
}

func (c *I2C) rdwr(msgs []i2cMsg) error {
	data := i2cRdwrData{
		msgs:  uintptr(unsafe.Pointer(&msgs[0])),
		nmsgs: uint32(len(msgs)),
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(c.fd), i2cRdwr, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(msgs)
	if errno != 0 {
		return errors.Wrap(errno, "i2c transport: I2C_RDWR")
	}
	return nil
}
