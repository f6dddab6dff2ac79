// Package serial carries the hat link over a UART.
//
// A UART has no shared clock, so one side leads each exchange by writing
// its frame first and the other side answers. Each frame is wrapped with a
// sync byte and a checksum so the receiver finds frame boundaries again
// after a partial read.
package serial

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// DefaultBaudRate of the link.
const DefaultBaudRate = 115200

// Link is a link.Exchanger over a byte stream.
type Link struct {
	Port io.ReadWriteCloser
	// Lead writes before reading. The host leads, the hat follows.
	Lead bool

	lock    sync.Mutex
	parser  parser
	buf     [wireSize]byte
	pending []byte
}

// inputResetter is implemented by ports able to drop unread input.
type inputResetter interface {
	ResetInputBuffer() error
}

// Open opens a serial port.
func Open(name string, baud int, lead bool, timeout time.Duration) (*Link, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(name, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	if timeout > 0 {
		if err := port.SetReadTimeout(timeout); err != nil {
			port.Close()
			return nil, err
		}
	}
	if err := port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, err
	}
	return &Link{Port: port, Lead: lead}, nil
}

// Ports lists the serial ports present.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Exchange implements link.Exchanger. A short count means no complete
// frame was received before the read timeout; the partial frame is
// dropped and never carried into the next exchange.
func (l *Link) Exchange(tx, rx []byte) (int, error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	if l.Lead {
		if _, err := l.Port.Write(wrap(tx)); err != nil {
			return 0, err
		}
		return l.read(rx)
	}
	n, err := l.read(rx)
	if err != nil || n < len(rx) {
		return n, err
	}
	if _, err := l.Port.Write(wrap(tx)); err != nil {
		return 0, err
	}
	return n, nil
}

// read receives the next complete frame into rx.
func (l *Link) read(rx []byte) (int, error) {
	for {
		for len(l.pending) > 0 {
			b := l.pending[0]
			l.pending = l.pending[1:]
			if l.parser.parse(b) {
				if l.parser.skipped > 0 {
					glog.V(1).Infof("serial: resynced, %d bytes skipped", l.parser.skipped)
					l.parser.skipped = 0
				}
				return copy(rx, l.parser.frame[:]), nil
			}
		}
		m, err := l.Port.Read(l.buf[:])
		if err != nil {
			n := l.parser.partial()
			l.parser.reset()
			return n, err
		}
		if m == 0 {
			return l.timeout()
		}
		l.pending = l.buf[:m]
	}
}

// timeout drops a partial frame and any input left behind it.
func (l *Link) timeout() (int, error) {
	n := l.parser.partial()
	l.parser.reset()
	l.pending = nil
	if n > 0 {
		glog.Warningf("serial: partial frame dropped after %d bytes", n)
		if r, ok := l.Port.(inputResetter); ok {
			if err := r.ResetInputBuffer(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Close closes the port.
func (l *Link) Close() error {
	return l.Port.Close()
}
