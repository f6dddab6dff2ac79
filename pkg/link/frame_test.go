package link

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeStatus(t *testing.T) {
	testCases := []struct {
		name    string
		buttons Buttons
		x, y    int8
		expect  StatusFrame
	}{
		{"idle", 0, 0, 0, StatusFrame{}},
		{"menu", ButtonMenu, 0, 0, StatusFrame{0x01}},
		{"joystick", ButtonJoystick, 100, -100, StatusFrame{0x02, 100, 0x9c}},
		{"both", ButtonMenu | ButtonJoystick, -1, 1, StatusFrame{0x03, 0xff, 0x01}},
		{"reserved bits dropped", Buttons(0xfc) | ButtonMenu, 5, 6, StatusFrame{0x01, 5, 6}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := EncodeStatus(tc.buttons, tc.x, tc.y)
			require.Equal(t, tc.expect, f)
			status, err := DecodeStatus(f[:])
			require.NoError(t, err)
			require.Equal(t, tc.x, status.X)
			require.Equal(t, tc.y, status.Y)
			require.Equal(t, tc.buttons&(ButtonMenu|ButtonJoystick), status.Buttons)
		})
	}
}

func TestDecodeStatusSize(t *testing.T) {
	_, err := DecodeStatus([]byte{1, 2, 3})
	require.ErrorIs(t, err, ErrFrameSize)
}

func TestButtons(t *testing.T) {
	b := ButtonJoystick
	require.True(t, b.Joystick())
	require.False(t, b.Menu())
}
