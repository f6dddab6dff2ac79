package hat

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/moab.go/pkg/joystick"
	"github.com/robotalks/moab.go/pkg/link"
)

func TestTransportCycle(t *testing.T) {
	state := &joystick.State{}
	state.SetPosition(-20, 42)
	state.Menu.Store(true)
	reply := link.SetPlateAngles{ThetaX: 3, ThetaY: -4}.Encode()

	var sent []byte
	tr := &Transport{
		State: state,
		Queue: NewQueue(),
		Link: link.ExchangeFunc(func(tx, rx []byte) (int, error) {
			sent = append([]byte(nil), tx...)
			return copy(rx, reply[:]), nil
		}),
	}
	require.NoError(t, tr.Cycle())
	require.Equal(t, []byte{0x01, 0xec, 0x2a, 0, 0, 0, 0, 0}, sent)
	require.Equal(t, 1, tr.Queue.Len())
}

func TestTransportDropsIncomplete(t *testing.T) {
	testCases := []struct {
		name string
		n    int
		err  error
		want error
	}{
		{"short", 5, nil, link.ErrShortExchange},
		{"empty", 0, nil, link.ErrShortExchange},
		{"failed", link.FrameSize, errors.New("bus fault"), nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tr := &Transport{
				State: &joystick.State{},
				Queue: NewQueue(),
				Link: link.ExchangeFunc(func(tx, rx []byte) (int, error) {
					return tc.n, tc.err
				}),
			}
			err := tr.Cycle()
			require.Error(t, err)
			if tc.want != nil {
				require.ErrorIs(t, err, tc.want)
			}
			require.Zero(t, tr.Queue.Len())
		})
	}
}
