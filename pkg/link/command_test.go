package link

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeControl(t *testing.T) {
	testCases := []struct {
		name   string
		frame  []byte
		expect Command
	}{
		{"noop", []byte{0x00, 1, 2, 3, 4, 5, 6, 7}, Noop{}},
		{"enable", []byte{0x01, 0, 0, 0, 0, 0, 0, 0}, ServoEnable{}},
		{"disable", []byte{0x02, 0, 0, 0, 0, 0, 0, 0}, ServoDisable{}},
		{"control info", []byte{0x03, 1, 2, 3, 4, 5, 6, 7}, ControlInfo{Payload: [7]byte{1, 2, 3, 4, 5, 6, 7}}},
		{"plate angles", []byte{0x04, 0xfb, 12, 0, 0, 0, 0, 0}, SetPlateAngles{ThetaX: -5, ThetaY: 12}},
		{"servo angles", []byte{0x05, 0x3a, 0x98, 0x2e, 0xe0, 0x00, 0x64, 0}, SetServoAngles{Centidegrees: [3]uint16{15000, 12000, 100}}},
		{"copy string", []byte{0x80, 'h', 'e', 'l', 'l', 'o', 0, 0}, CopyString{Chunk: [7]byte{'h', 'e', 'l', 'l', 'o'}}},
		{"big text icon", []byte{0x81, 4, 0, 0, 0, 0, 0, 0}, ShowBigTextIcon{Icon: 4}},
		{"big text", []byte{0x82, 0, 0, 0, 0, 0, 0, 0}, ShowBigText{}},
		{"small text", []byte{0x83, 0, 0, 0, 0, 0, 0, 0}, ShowSmallText{}},
		{"power icon", []byte{0x84, 2, 0, 0, 0, 0, 0, 0}, ShowPowerIcon{Icon: 2}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cmd, err := DecodeControl(tc.frame)
			require.NoError(t, err)
			require.Equal(t, tc.expect, cmd)
			require.Equal(t, Code(tc.frame[0]), cmd.Code())
		})
	}
}

func TestEncodeControl(t *testing.T) {
	require.Equal(t, ControlFrame{0x04, 0xfb, 12}, SetPlateAngles{ThetaX: -5, ThetaY: 12}.Encode())
	require.Equal(t,
		ControlFrame{0x05, 0x3a, 0x98, 0x2e, 0xe0, 0x00, 0x64},
		SetServoAngles{Centidegrees: [3]uint16{15000, 12000, 100}}.Encode())
	require.Equal(t, ControlFrame{0x81, 7}, ShowBigTextIcon{Icon: 7}.Encode())
	require.Equal(t, ControlFrame{0x01}, ServoEnable{}.Encode())
}

func TestDecodeControlAllCodes(t *testing.T) {
	for code := 0; code < 256; code++ {
		frame := ControlFrame{byte(code), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
		cmd, err := frame.Decode()
		if _, known := codeNames[Code(code)]; known {
			require.NoError(t, err, "code %#02x", code)
			require.Equal(t, Code(code), cmd.Code())
			continue
		}
		require.Nil(t, cmd)
		var unknown *UnknownCodeError
		require.True(t, errors.As(err, &unknown), "code %#02x", code)
		require.Equal(t, Code(code), unknown.Code)
	}
}

func TestDecodeControlFrameSize(t *testing.T) {
	for _, size := range []int{0, 1, 7, 9} {
		_, err := DecodeControl(make([]byte, size))
		require.ErrorIs(t, err, ErrFrameSize)
	}
}

func TestCodeString(t *testing.T) {
	require.Equal(t, "set-plate-angles", CodeSetPlateAngles.String())
	require.Equal(t, "unknown control code 0x42", Code(0x42).String())
	require.True(t, CodeShowPowerIcon.IsCommit())
	require.False(t, CodeCopyString.IsCommit())
}
