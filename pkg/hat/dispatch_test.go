package hat

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/moab.go/pkg/calibration"
	"github.com/robotalks/moab.go/pkg/link"
	"github.com/robotalks/moab.go/pkg/plate"
)

type fakeActuator struct {
	lock    sync.Mutex
	pulses  [plate.NumServos]uint32
	enabled bool
}

func (a *fakeActuator) SetPulseWidth(ch int, usec uint32) error {
	a.lock.Lock()
	a.pulses[ch] = usec
	a.lock.Unlock()
	return nil
}

func (a *fakeActuator) Enable(on bool) error {
	a.lock.Lock()
	a.enabled = on
	a.lock.Unlock()
	return nil
}

func (a *fakeActuator) isEnabled() bool {
	a.lock.Lock()
	defer a.lock.Unlock()
	return a.enabled
}

type shown struct {
	mode string
	text string
	icon byte
}

type fakeDisplay struct {
	lock  sync.Mutex
	shown []shown
	err   error
}

func (d *fakeDisplay) add(s shown) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if d.err != nil {
		return d.err
	}
	d.shown = append(d.shown, s)
	return nil
}

func (d *fakeDisplay) ShowBigTextIcon(text string, icon DisplayIcon) error {
	return d.add(shown{"big-icon", text, byte(icon)})
}

func (d *fakeDisplay) ShowBigText(text string) error {
	return d.add(shown{"big", text, 0})
}

func (d *fakeDisplay) ShowSmallText(text string) error {
	return d.add(shown{"small", text, 0})
}

func (d *fakeDisplay) ShowPowerIcon(text string, icon PowerIcon) error {
	return d.add(shown{"power", text, byte(icon)})
}

func newTestDispatcher() (*Dispatcher, *fakeActuator, *fakeDisplay) {
	act, disp := &fakeActuator{}, &fakeDisplay{}
	return &Dispatcher{
		Queue:   NewQueue(),
		Plate:   plate.New(act, calibration.DefaultServo()),
		Display: disp,
	}, act, disp
}

func TestDispatchServoPower(t *testing.T) {
	d, act, _ := newTestDispatcher()
	require.NoError(t, d.Dispatch(link.ServoEnable{}.Encode()))
	require.True(t, act.isEnabled())
	require.True(t, d.Plate.Enabled())
	require.NoError(t, d.Dispatch(link.ServoDisable{}.Encode()))
	require.False(t, act.isEnabled())
}

func TestDispatchUnknownCodeContinues(t *testing.T) {
	d, act, _ := newTestDispatcher()
	require.NoError(t, d.Dispatch(link.ControlFrame{0x42, 1, 2, 3}))
	require.Equal(t, link.Code(0x42), d.prior)
	require.NoError(t, d.Dispatch(link.ServoEnable{}.Encode()))
	require.True(t, act.isEnabled())
}

func TestDispatchPlateAngles(t *testing.T) {
	d, _, _ := newTestDispatcher()
	require.NoError(t, d.Dispatch(link.SetPlateAngles{ThetaX: 0, ThetaY: 0}.Encode()))
	for _, p := range d.Plate.Pulses() {
		require.Equal(t, uint32(1945), p)
	}
}

func TestDispatchServoAngles(t *testing.T) {
	d, _, _ := newTestDispatcher()
	cmd := link.SetServoAngles{Centidegrees: [3]uint16{9000, 15000, 16000}}
	require.NoError(t, d.Dispatch(cmd.Encode()))
	cal := calibration.DefaultServo()
	require.Equal(t, [plate.NumServos]uint32{
		plate.PulseWidth(90, cal[0]),
		plate.PulseWidth(150, cal[1]),
		plate.PulseWidth(160, cal[2]),
	}, d.Plate.Pulses())
	require.Equal(t, uint32(cal[2].Max), d.Plate.Pulses()[2])
}

func TestDispatchText(t *testing.T) {
	testCases := []struct {
		name   string
		commit link.Command
		want   shown
	}{
		{"big-icon", link.ShowBigTextIcon{Icon: byte(IconCheck)}, shown{"big-icon", "Hello, Moab!", byte(IconCheck)}},
		{"big", link.ShowBigText{}, shown{"big", "Hello, Moab!", 0}},
		{"small", link.ShowSmallText{}, shown{"small", "Hello, Moab!", 0}},
		{"power", link.ShowPowerIcon{Icon: byte(PowerSleep)}, shown{"power", "Hello, Moab!", byte(PowerSleep)}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, _, disp := newTestDispatcher()
			for _, f := range link.SplitText("Hello, Moab!") {
				require.NoError(t, d.Dispatch(f))
			}
			require.NoError(t, d.Dispatch(tc.commit.Encode()))
			require.Equal(t, []shown{tc.want}, disp.shown)
			require.Zero(t, d.text.Len())
		})
	}
}

func TestDispatchInvalidIcon(t *testing.T) {
	d, _, disp := newTestDispatcher()
	for _, f := range link.SplitText("bad") {
		require.NoError(t, d.Dispatch(f))
	}
	var iconErr *InvalidIconError
	err := d.Dispatch(link.ShowBigTextIcon{Icon: 99}.Encode())
	require.ErrorAs(t, err, &iconErr)
	require.False(t, iconErr.Power)
	require.Zero(t, d.text.Len())

	err = d.Dispatch(link.ShowPowerIcon{Icon: byte(numPowerIcons)}.Encode())
	require.ErrorAs(t, err, &iconErr)
	require.True(t, iconErr.Power)
	require.Empty(t, disp.shown)
}

func TestDispatchTextOverflow(t *testing.T) {
	d, _, _ := newTestDispatcher()
	chunk := link.CopyString{Chunk: [link.PayloadSize]byte{'a', 'b', 'c', 'd', 'e', 'f', 'g'}}
	for i := 0; i < link.MaxChunks; i++ {
		require.NoError(t, d.Dispatch(chunk.Encode()))
	}
	require.ErrorIs(t, d.Dispatch(chunk.Encode()), link.ErrTextOverflow)
	require.Equal(t, link.MaxChunks*link.PayloadSize, d.text.Len())
}

func TestDispatchDisplayError(t *testing.T) {
	d, _, disp := newTestDispatcher()
	disp.err = errors.New("i2c nack")
	require.Error(t, d.Dispatch(link.ShowBigText{}.Encode()))
	d.Display = nil
	require.NoError(t, d.Dispatch(link.ShowSmallText{}.Encode()))
}
