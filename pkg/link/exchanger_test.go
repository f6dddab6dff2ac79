package link

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPipe(t *testing.T) {
	host, hat := Pipe()
	defer host.Close()

	status := EncodeStatus(ButtonMenu, 10, -10)
	type result struct {
		n   int
		err error
		rx  [FrameSize]byte
	}
	resCh := make(chan result, 1)
	go func() {
		var res result
		res.n, res.err = hat.Exchange(status[:], res.rx[:])
		resCh <- res
	}()

	ctl := ServoEnable{}.Encode()
	var rx StatusFrame
	n, err := host.Exchange(ctl[:], rx[:])
	require.NoError(t, err)
	require.Equal(t, FrameSize, n)
	require.Equal(t, status, rx)

	res := <-resCh
	require.NoError(t, res.err)
	require.Equal(t, FrameSize, res.n)
	require.Equal(t, [FrameSize]byte(ctl), res.rx)
}

func TestPipeClose(t *testing.T) {
	host, hat := Pipe()
	errCh := make(chan error, 1)
	go func() {
		_, err := hat.Exchange(make([]byte, FrameSize), make([]byte, FrameSize))
		errCh <- err
	}()
	require.NoError(t, host.Close())
	require.ErrorIs(t, <-errCh, ErrClosedPipe)
	_, err := host.Exchange(nil, nil)
	require.ErrorIs(t, err, ErrClosedPipe)
}
