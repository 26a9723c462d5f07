// internal/transport/frame.go
package transport

import (
	"errors"
	"fmt"
)

// Serial bridge frame protocol v1. The bridge MCU forwards register
// reads/writes to the mailbox; framing is fixed and version-locked.
//
// Request (8 bytes header):
//	0–1  Magic "MB"
//	2    Version (0x01)
//	3    Op (0x01 read, 0x02 write)
//	4–5  Offset
//	6–7  Count
//	8+   Payload (writes only)
//
// Response:
//	0    Status (0x00 ok, 0x01 rejected)
//	1+   Payload (reads only, exactly Count bytes)
const (
	frameMagicHi byte = 0x4D // 'M'
	frameMagicLo byte = 0x42 // 'B'

	frameVersionV1 byte = 0x01

	opRead  byte = 0x01
	opWrite byte = 0x02

	respOK       byte = 0x00
	respRejected byte = 0x01

	frameHeaderLen = 8
)

func buildFrameV1(op byte, offset, count uint16, payload []byte) []byte {
	header := make([]byte, frameHeaderLen)

	header[0] = frameMagicHi
	header[1] = frameMagicLo
	header[2] = frameVersionV1
	header[3] = op

	putU16(header[4:6], offset)
	putU16(header[6:8], count)

	return append(header, payload...)
}

// parseFrameV1 validates a request frame and returns op, offset and payload.
// Used by the bridge simulator and the codec tests; the client only builds.
func parseFrameV1(frame []byte) (op byte, offset uint16, count uint16, payload []byte, err error) {
	if len(frame) < frameHeaderLen {
		return 0, 0, 0, nil, errors.New("serial frame: short header")
	}
	if frame[0] != frameMagicHi || frame[1] != frameMagicLo {
		return 0, 0, 0, nil, errors.New("serial frame: bad magic")
	}
	if frame[2] != frameVersionV1 {
		return 0, 0, 0, nil, fmt.Errorf("serial frame: unsupported version 0x%02x", frame[2])
	}
	op = frame[3]
	if op != opRead && op != opWrite {
		return 0, 0, 0, nil, fmt.Errorf("serial frame: unknown op 0x%02x", op)
	}
	offset = getU16(frame[4:6])
	count = getU16(frame[6:8])
	payload = frame[frameHeaderLen:]
	if op == opWrite && len(payload) != int(count) {
		return 0, 0, 0, nil, fmt.Errorf("serial frame: payload length %d != count %d", len(payload), count)
	}
	if op == opRead && len(payload) != 0 {
		return 0, 0, 0, nil, errors.New("serial frame: read carries payload")
	}
	return op, offset, count, payload, nil
}

func putU16(dst []byte, v uint16) {
	dst[0] = byte(v >> 8)
	dst[1] = byte(v)
}

func getU16(src []byte) uint16 {
	return uint16(src[0])<<8 | uint16(src[1])
}
