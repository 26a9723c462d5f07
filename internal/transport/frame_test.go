// internal/transport/frame_test.go
package transport

import (
	"bytes"
	"testing"
)

func TestFrameRoundTripWrite(t *testing.T) {
	payload := []byte{1, 2, 3, 4}
	frame := buildFrameV1(opWrite, 0x1234, 4, payload)

	op, offset, count, got, err := parseFrameV1(frame)
	if err != nil {
		t.Fatalf("parse err=%v", err)
	}
	if op != opWrite || offset != 0x1234 || count != 4 {
		t.Fatalf("parsed op=%d offset=%d count=%d", op, offset, count)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("payload %v want %v", got, payload)
	}
}

func TestFrameRoundTripRead(t *testing.T) {
	frame := buildFrameV1(opRead, 2046, 1, nil)
	if len(frame) != frameHeaderLen {
		t.Fatalf("read frame must be header only, got %d bytes", len(frame))
	}

	op, offset, count, payload, err := parseFrameV1(frame)
	if err != nil {
		t.Fatalf("parse err=%v", err)
	}
	if op != opRead || offset != 2046 || count != 1 || len(payload) != 0 {
		t.Fatalf("parsed op=%d offset=%d count=%d payload=%v", op, offset, count, payload)
	}
}

func TestFrameParseRejects(t *testing.T) {
	good := buildFrameV1(opWrite, 10, 2, []byte{9, 9})

	cases := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"short header", func(f []byte) []byte { return f[:4] }},
		{"bad magic", func(f []byte) []byte { f[0] = 'X'; return f }},
		{"bad version", func(f []byte) []byte { f[2] = 0x7F; return f }},
		{"bad op", func(f []byte) []byte { f[3] = 0x55; return f }},
		{"payload shorter than count", func(f []byte) []byte { return f[:len(f)-1] }},
		{"read with payload", func(f []byte) []byte { f[3] = opRead; return f }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frame := make([]byte, len(good))
			copy(frame, good)
			if _, _, _, _, err := parseFrameV1(tc.mutate(frame)); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestMemTransportBounds(t *testing.T) {
	m := NewMem(16)

	if err := m.BulkWrite(14, []byte{1, 2}); err != nil {
		t.Fatalf("in-bounds write err=%v", err)
	}
	if err := m.BulkWrite(15, []byte{1, 2}); err == nil {
		t.Fatalf("out-of-bounds write should fail")
	}
	if err := m.BulkRead(15, make([]byte, 2)); err == nil {
		t.Fatalf("out-of-bounds read should fail")
	}

	buf := make([]byte, 2)
	if err := m.BulkRead(14, buf); err != nil {
		t.Fatalf("read err=%v", err)
	}
	if buf[0] != 1 || buf[1] != 2 {
		t.Fatalf("read back %v", buf)
	}

	// The rejected transfers show up in the log as errors.
	calls := m.Calls()
	if len(calls) != 4 {
		t.Fatalf("got %d recorded calls, want 4", len(calls))
	}
	if !calls[1].Err || calls[1].Dir != "w" || calls[1].Offset != 15 {
		t.Fatalf("rejected write not recorded: %+v", calls[1])
	}
	if !calls[2].Err || calls[2].Dir != "r" || calls[2].Offset != 15 {
		t.Fatalf("rejected read not recorded: %+v", calls[2])
	}
}
