package hat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robotalks/moab.go/pkg/link"
)

// ErrTimeout indicates Get returned without a frame.
var ErrTimeout = errors.New("queue wait timeout")

// Queue hands received frames from the transport task to the dispatch
// task. It has a single producer and a single consumer.
type Queue struct {
	head   *pendingCommand
	tail   *pendingCommand
	size   int
	lock   sync.Mutex
	wakeCh chan struct{}
}

type pendingCommand struct {
	frame link.ControlFrame
	next  *pendingCommand
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{wakeCh: make(chan struct{}, 1)}
}

// Put appends a frame.
func (q *Queue) Put(frame link.ControlFrame) {
	item := &pendingCommand{frame: frame}
	q.lock.Lock()
	if q.head == nil {
		q.head = item
	} else {
		q.tail.next = item
	}
	q.tail = item
	q.size++
	q.lock.Unlock()
	select {
	case q.wakeCh <- struct{}{}:
	default:
	}
}

// Len returns the number of queued frames.
func (q *Queue) Len() int {
	q.lock.Lock()
	defer q.lock.Unlock()
	return q.size
}

func (q *Queue) pop() (*pendingCommand, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	item := q.head
	if item == nil {
		return nil, false
	}
	if q.head = item.next; q.head == nil {
		q.tail = nil
	}
	q.size--
	item.next = nil
	return item, true
}

// Get removes the oldest frame, waiting for one if the queue is empty.
// A timeout <= 0 waits until the context is done.
func (q *Queue) Get(ctx context.Context, timeout time.Duration) (link.ControlFrame, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		if item, ok := q.pop(); ok {
			return item.frame, nil
		}
		select {
		case <-q.wakeCh:
		case <-expired:
			return link.ControlFrame{}, ErrTimeout
		case <-ctx.Done():
			return link.ControlFrame{}, ctx.Err()
		}
	}
}
