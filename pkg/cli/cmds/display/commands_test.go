package display

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/moab.go/pkg/host"
	"github.com/robotalks/moab.go/pkg/link"
)

func TestParseText(t *testing.T) {
	testCases := []struct {
		args  []string
		text  string
		mode  host.DisplayMode
		icon  byte
		valid bool
	}{
		{[]string{"big", "hello", "world"}, "hello world", host.DisplayBigText, 0, true},
		{[]string{"small"}, "", host.DisplaySmallText, 0, true},
		{[]string{"icon", "6", "done"}, "done", host.DisplayBigTextIcon, 6, true},
		{[]string{"power", "0x4", "off"}, "off", host.DisplayPowerIcon, 4, true},
		{[]string{"icon"}, "", 0, 0, false},
		{[]string{"icon", "300", "x"}, "", 0, 0, false},
		{[]string{"huge", "x"}, "", 0, 0, false},
		{nil, "", 0, 0, false},
	}
	for _, tc := range testCases {
		text, mode, icon, err := ParseText(tc.args)
		if !tc.valid {
			require.Error(t, err, "%v", tc.args)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tc.text, text)
		require.Equal(t, tc.mode, mode)
		require.Equal(t, tc.icon, icon)
	}
}

func TestParseFrame(t *testing.T) {
	f, err := ParseFrame("0405fb")
	require.NoError(t, err)
	require.Equal(t, link.SetPlateAngles{ThetaX: 5, ThetaY: -5}.Encode(), f)

	for _, bad := range []string{"", "zz", "000000000000000000"} {
		_, err := ParseFrame(bad)
		require.Error(t, err, bad)
	}
}
