package hat

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/moab.go/pkg/link"
)

func TestQueueOrder(t *testing.T) {
	q := NewQueue()
	for i := 0; i < 5; i++ {
		q.Put(link.ControlFrame{byte(i)})
	}
	require.Equal(t, 5, q.Len())
	for i := 0; i < 5; i++ {
		f, err := q.Get(context.Background(), time.Second)
		require.NoError(t, err)
		require.Equal(t, byte(i), f[0])
	}
	require.Zero(t, q.Len())
}

func TestQueueTimeout(t *testing.T) {
	q := NewQueue()
	_, err := q.Get(context.Background(), 10*time.Millisecond)
	require.ErrorIs(t, err, ErrTimeout)
}

func TestQueueCanceled(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := q.Get(ctx, 0)
	require.ErrorIs(t, err, context.Canceled)
}

func TestQueueWakesWaiter(t *testing.T) {
	q := NewQueue()
	got := make(chan link.ControlFrame, 1)
	go func() {
		f, err := q.Get(context.Background(), 0)
		if err == nil {
			got <- f
		}
	}()
	time.Sleep(10 * time.Millisecond)
	q.Put(link.ServoEnable{}.Encode())
	select {
	case f := <-got:
		require.Equal(t, link.CodeServoEnable, f.Code())
	case <-time.After(time.Second):
		t.Fatal("waiter not woken")
	}
}
