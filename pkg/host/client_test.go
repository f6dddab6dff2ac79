package host

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/moab.go/pkg/link"
	"github.com/robotalks/moab.go/pkg/plate"
)

type fakeHat struct {
	lock   sync.Mutex
	frames []link.ControlFrame
	status link.Status
	err    error
}

func (h *fakeHat) Exchange(tx, rx []byte) (int, error) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.err != nil {
		return 0, h.err
	}
	var f link.ControlFrame
	copy(f[:], tx)
	h.frames = append(h.frames, f)
	s := h.status.Encode()
	return copy(rx, s[:]), nil
}

func (h *fakeHat) setStatus(s link.Status) {
	h.lock.Lock()
	h.status = s
	h.lock.Unlock()
}

func (h *fakeHat) take() []link.ControlFrame {
	h.lock.Lock()
	defer h.lock.Unlock()
	frames := h.frames
	h.frames = nil
	return frames
}

func TestClientPoll(t *testing.T) {
	hat := &fakeHat{status: link.Status{Buttons: link.ButtonMenu, X: 12, Y: -7}}
	c := &Client{Link: hat}
	s, err := c.Poll()
	require.NoError(t, err)
	require.Equal(t, hat.status, s)
	require.Equal(t, s, c.Status())
	require.Equal(t, []link.ControlFrame{link.Noop{}.Encode()}, hat.take())
}

func TestClientShortExchange(t *testing.T) {
	c := &Client{Link: link.ExchangeFunc(func(tx, rx []byte) (int, error) { return 3, nil })}
	_, err := c.Poll()
	require.ErrorIs(t, err, link.ErrShortExchange)

	c.Link = &fakeHat{err: errors.New("bus fault")}
	require.Error(t, c.EnableServos())
}

func TestClientServoAngles(t *testing.T) {
	hat := &fakeHat{}
	c := &Client{Link: hat}
	require.NoError(t, c.SetServoAngles([3]float64{100, 120.5, 140}))
	frames := hat.take()
	require.Len(t, frames, 1)
	cmd, err := frames[0].Decode()
	require.NoError(t, err)
	require.Equal(t, link.SetServoAngles{Centidegrees: [3]uint16{14000, 10000, 12050}}, cmd)

	require.NoError(t, c.Hover())
	cmd, err = hat.take()[0].Decode()
	require.NoError(t, err)
	h := uint16(plate.HoverAngle * 100)
	require.Equal(t, link.SetServoAngles{Centidegrees: [3]uint16{h, h, h}}, cmd)
}

func TestClientPlateAngles(t *testing.T) {
	testCases := []struct {
		name    string
		x, y    float64
		offsets [3]float64
		want    link.SetPlateAngles
	}{
		{"plain", 3, -4, [3]float64{}, link.SetPlateAngles{ThetaX: 3, ThetaY: -4}},
		{"rounded", 2.6, -2.6, [3]float64{}, link.SetPlateAngles{ThetaX: 3, ThetaY: -3}},
		{"clamped", 500, -500, [3]float64{}, link.SetPlateAngles{ThetaX: 127, ThetaY: -128}},
		{"servo1", 0, 0, [3]float64{2, 0, 0}, link.SetPlateAngles{ThetaX: 2, ThetaY: 0}},
		{"servo2", 0, 0, [3]float64{0, 2, 0}, link.SetPlateAngles{ThetaX: -1, ThetaY: 2}},
		{"servo3", 0, 0, [3]float64{0, 0, 2}, link.SetPlateAngles{ThetaX: -1, ThetaY: -2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hat := &fakeHat{}
			c := &Client{Link: hat, Offsets: tc.offsets}
			require.NoError(t, c.SetPlateAngles(tc.x, tc.y))
			cmd, err := hat.take()[0].Decode()
			require.NoError(t, err)
			require.Equal(t, tc.want, cmd)
		})
	}
}

func TestClientDisplay(t *testing.T) {
	hat := &fakeHat{}
	c := &Client{Link: hat}
	require.NoError(t, c.Display("Balance me", DisplayBigTextIcon, 6))
	frames := hat.take()
	require.Len(t, frames, 3)

	var text link.TextBuffer
	for _, f := range frames[:2] {
		cmd, err := f.Decode()
		require.NoError(t, err)
		require.NoError(t, text.Append(cmd.(link.CopyString).Chunk))
	}
	require.Equal(t, "BALANCE ME", text.Commit())
	require.Equal(t, link.ShowBigTextIcon{Icon: 6}.Encode(), frames[2])

	require.Error(t, c.Display("x", DisplayMode(9), 0))
	require.Empty(t, hat.take())
}
