package hat

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/robotalks/moab.go/pkg/joystick"
	"github.com/robotalks/moab.go/pkg/link"
)

// Transport exchanges a StatusFrame for a ControlFrame each cycle and
// queues every complete ControlFrame.
type Transport struct {
	Link  link.Exchanger
	State *joystick.State
	Queue *Queue
	// ErrorBackoff is slept after a failed exchange.
	ErrorBackoff time.Duration

	cycles uint64
}

// Cycle performs one exchange.
func (t *Transport) Cycle() error {
	status := t.State.Snapshot().Encode()
	var rx link.ControlFrame
	n, err := t.Link.Exchange(status[:], rx[:])
	t.cycles++
	if err != nil {
		return err
	}
	if n != link.FrameSize {
		return link.ErrShortExchange
	}
	glog.V(5).Infof("cycle %d: tx % x rx % x", t.cycles, status[:], rx[:])
	t.Queue.Put(rx)
	return nil
}

// Run implements Runnable. A Link that is an io.Closer is closed when
// the context is done to release a pending exchange.
func (t *Transport) Run(ctx context.Context) error {
	if closer, ok := t.Link.(io.Closer); ok {
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			select {
			case <-ctx.Done():
				closer.Close()
			case <-stop:
			}
		}()
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := t.Cycle(); err != nil {
			glog.Warningf("exchange: %v", err)
			if t.ErrorBackoff > 0 {
				select {
				case <-ctx.Done():
				case <-time.After(t.ErrorBackoff):
				}
			}
		}
	}
}
