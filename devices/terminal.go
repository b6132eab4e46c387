// Package devices implements the bus peripherals Vixen machines
// attach to core.IOController: a terminal (stdin/stdout over MMIO
// ports) and a real-time clock with an optional countdown timer.
package devices

import (
	"bufio"
	"io"
	"sync"

	"github.com/floofi-org/vixen/core"
)

// Terminal is a 3-port device: port 0 is write-only (queue a byte for
// output), port 1 is read-only (pop a received byte), port 2 is
// read-only (whether output is pending flush). Output is buffered and
// flushed one byte per tick; input arrives asynchronously from a
// reader goroutine feeding a channel, so Tick never blocks on a quiet
// stdin.
type Terminal struct {
	mu sync.Mutex

	out *bufio.Writer

	writeBuf []byte
	readBuf  []byte

	incoming chan byte
}

// NewTerminal wraps arbitrary reader/writer plumbing, used directly
// in tests and by NewStdioTerminal for the real console.
func NewTerminal(r io.Reader, w io.Writer) *Terminal {
	t := &Terminal{
		out:      bufio.NewWriter(w),
		incoming: make(chan byte, 512),
	}
	go t.pump(r)
	return t
}

func (t *Terminal) pump(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n == 1 {
			select {
			case t.incoming <- buf[0]:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

func (t *Terminal) Name() string        { return "terminal" }
func (t *Terminal) BaseAddress() uint32 { return core.DeviceBusBase }
func (t *Terminal) PortCount() uint32   { return 3 }

// ReadPort implements core.BusDevice.
func (t *Terminal) ReadPort(port uint32) (uint32, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch port {
	case 0:
		return 0, core.WriteOnly
	case 1:
		if len(t.readBuf) == 0 {
			return 0, core.EmptyBuffer
		}
		b := t.readBuf[0]
		t.readBuf = t.readBuf[1:]
		return uint32(b), nil
	case 2:
		if len(t.writeBuf) > 0 {
			return 1, nil
		}
		return 0, nil
	}
	return 0, core.PortOutOfRange
}

// WritePort implements core.BusDevice.
func (t *Terminal) WritePort(port uint32, value uint32) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch port {
	case 0:
		t.writeBuf = append(t.writeBuf, byte(value))
		return nil
	case 1, 2:
		return core.ReadOnly
	}
	return core.PortOutOfRange
}

// Tick flushes one pending output byte and drains any buffered input
// from the reader goroutine into the read queue.
func (t *Terminal) Tick() error {
	t.mu.Lock()
	if len(t.writeBuf) > 0 {
		b := t.writeBuf[0]
		t.writeBuf = t.writeBuf[1:]
		t.out.WriteByte(b)
		t.out.Flush()
	}
	t.mu.Unlock()

	select {
	case b := <-t.incoming:
		t.mu.Lock()
		t.readBuf = append(t.readBuf, b)
		t.mu.Unlock()
		return core.AsyncIO
	default:
		return nil
	}
}
