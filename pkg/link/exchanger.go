package link

import (
	"errors"
	"io"
	"sync"
)

// Exchanger performs one full-duplex transfer: tx is sent while rx is
// received. It returns the number of bytes received.
type Exchanger interface {
	Exchange(tx, rx []byte) (int, error)
}

// ExchangeFunc is the func form of Exchanger.
type ExchangeFunc func(tx, rx []byte) (int, error)

// Exchange implements Exchanger.
func (f ExchangeFunc) Exchange(tx, rx []byte) (int, error) {
	return f(tx, rx)
}

// ErrClosedPipe is returned by a PipeEnd after Close.
var ErrClosedPipe = errors.New("closed pipe")

// PipeEnd is one side of an in-memory link created by Pipe.
type PipeEnd struct {
	in   <-chan []byte
	out  chan<- []byte
	done chan struct{}
	once *sync.Once
}

// Pipe creates two connected in-memory Exchangers. An Exchange on one end
// blocks until the other end exchanges too, like a clocked bus.
func Pipe() (*PipeEnd, *PipeEnd) {
	ab, ba := make(chan []byte), make(chan []byte)
	done, once := make(chan struct{}), &sync.Once{}
	return &PipeEnd{in: ba, out: ab, done: done, once: once},
		&PipeEnd{in: ab, out: ba, done: done, once: once}
}

// Exchange implements Exchanger.
func (p *PipeEnd) Exchange(tx, rx []byte) (int, error) {
	data := append([]byte(nil), tx...)
	var got []byte
	sent, received := false, false
	for !sent || !received {
		out, in := p.out, p.in
		if sent {
			out = nil
		}
		if received {
			in = nil
		}
		select {
		case out <- data:
			sent = true
		case got = <-in:
			received = true
		case <-p.done:
			return 0, ErrClosedPipe
		}
	}
	return copy(rx, got), nil
}

// Close unblocks both ends. Subsequent exchanges fail.
func (p *PipeEnd) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}

var _ io.Closer = (*PipeEnd)(nil)
