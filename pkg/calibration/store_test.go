package calibration

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func programBank(t *testing.T, m *MemoryOTP, bank int, data []byte) {
	require.NoError(t, m.Unlock())
	for i, b := range data {
		require.NoError(t, m.ProgramByte(int64(bank*BankSize+i), b))
	}
	require.NoError(t, m.Lock())
}

func joystickBank(t *testing.T, cal JoystickCalibration) []byte {
	data, err := cal.MarshalBinary()
	require.NoError(t, err)
	return append([]byte{JoystickMagic}, data...)
}

func servoBank(t *testing.T, cal ServoCalibration) []byte {
	data, err := cal.MarshalBinary()
	require.NoError(t, err)
	return data
}

func TestLoadJoystickDefaults(t *testing.T) {
	cal, bank, err := NewStore(NewMemoryOTP()).LoadJoystick()
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, -1, bank)
	require.Equal(t, DefaultJoystick(), cal)
	require.Equal(t, float32(0.5), cal.XNegScale)
}

func TestLoadJoystickScan(t *testing.T) {
	otp := NewMemoryOTP()
	low := JoystickCalibration{XOffset: 1, YOffset: 1, XPosScale: 1, XNegScale: 1, YPosScale: 1, YNegScale: 1}
	high := JoystickCalibration{XOffset: -12, YOffset: 40, XPosScale: 0.48, XNegScale: 0.52, YPosScale: 0.47, YNegScale: 0.51}
	programBank(t, otp, 4, joystickBank(t, low))
	programBank(t, otp, 10, joystickBank(t, high))
	// odd banks are not scanned for joystick records
	programBank(t, otp, 13, joystickBank(t, low))

	cal, bank, err := NewStore(otp).LoadJoystick()
	require.NoError(t, err)
	require.Equal(t, 10, bank)
	require.Equal(t, high, cal)
}

func TestLoadJoystickNoValidation(t *testing.T) {
	otp := NewMemoryOTP()
	odd := JoystickCalibration{XOffset: 4000, YOffset: -4000, XPosScale: 100, XNegScale: -1, YPosScale: 0, YNegScale: 3}
	programBank(t, otp, 0, joystickBank(t, odd))
	cal, bank, err := NewStore(otp).LoadJoystick()
	require.NoError(t, err)
	require.Zero(t, bank)
	require.Equal(t, odd, cal)
}

func TestLoadServoScan(t *testing.T) {
	otp := NewMemoryOTP()
	older := DefaultServo()
	newer := ServoCalibration{
		{Min: 1400, Mid: 1900, Max: 2200},
		{Min: 1460, Mid: 1960, Max: 2260},
		{Min: 1440, Mid: 1940, Max: 2240},
	}
	programBank(t, otp, 5, servoBank(t, older))
	programBank(t, otp, 9, servoBank(t, newer))

	cal, bank, err := NewStore(otp).LoadServo()
	require.NoError(t, err)
	require.Equal(t, 9, bank)
	require.Equal(t, newer, cal)
}

func TestLoadServoDefaults(t *testing.T) {
	cal, bank, err := NewStore(NewMemoryOTP()).LoadServo()
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, -1, bank)
	require.Equal(t, DefaultServo(), cal)
}

func TestLoadServoCorrupt(t *testing.T) {
	for servo := 0; servo < 3; servo++ {
		for field := 0; field < 3; field++ {
			for _, value := range []uint16{MinPulseWidth - 1, MaxPulseWidth + 1, 0x0100} {
				cal := DefaultServo()
				switch field {
				case 0:
					cal[servo].Min = value
				case 1:
					cal[servo].Mid = value
				case 2:
					cal[servo].Max = value
				}
				otp := NewMemoryOTP()
				programBank(t, otp, 7, servoBank(t, cal))

				loaded, bank, err := NewStore(otp).LoadServo()
				require.Equal(t, DefaultServo(), loaded)
				require.Equal(t, -1, bank)
				var corrupt *CorruptError
				require.True(t, errors.As(err, &corrupt))
				require.Equal(t, 7, corrupt.Bank)
				require.Equal(t, servo, corrupt.Servo)
				require.Equal(t, value, corrupt.Value)
			}
		}
	}
}

func TestLoadServoLimitsAccepted(t *testing.T) {
	cal := ServoCalibration{
		{Min: MinPulseWidth, Mid: 1000, Max: MaxPulseWidth},
		{Min: MinPulseWidth, Mid: 1000, Max: MaxPulseWidth},
		{Min: MinPulseWidth, Mid: 1000, Max: MaxPulseWidth},
	}
	otp := NewMemoryOTP()
	programBank(t, otp, 15, servoBank(t, cal))
	loaded, bank, err := NewStore(otp).LoadServo()
	require.NoError(t, err)
	require.Equal(t, 15, bank)
	require.Equal(t, cal, loaded)
}

func TestUnauthorizedWrite(t *testing.T) {
	otp := NewMemoryOTP()
	programBank(t, otp, 3, servoBank(t, DefaultServo()))
	before := otp.Bytes()
	store := NewStore(otp)

	for _, token := range []string{"", "Shazam", "shazam ", "wrong"} {
		bank, err := store.ResetServo(token)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.Equal(t, -1, bank)
		_, err = store.WriteJoystick(DefaultJoystick(), token)
		require.ErrorIs(t, err, ErrUnauthorized)
	}
	require.Equal(t, before, otp.Bytes())
}

func TestResetServo(t *testing.T) {
	otp := NewMemoryOTP()
	store := NewStore(otp)

	bank, err := store.ResetServo(authToken)
	require.NoError(t, err)
	require.Equal(t, 1, bank)

	cal, loaded, err := store.LoadServo()
	require.NoError(t, err)
	require.Equal(t, 1, loaded)
	require.Equal(t, ServoRange{Min: 1400, Mid: 1900, Max: 2200}, cal[0])
	require.Equal(t, ServoRange{Min: TypicalMin, Mid: TypicalMid, Max: TypicalMax}, cal[1])
	require.Equal(t, cal[1], cal[2])

	for expect := 3; expect < NumBanks; expect += 2 {
		bank, err = store.ResetServo(authToken)
		require.NoError(t, err)
		require.Equal(t, expect, bank)
	}
	_, err = store.ResetServo(authToken)
	require.ErrorIs(t, err, ErrNoFreeBank)

	// joystick banks are untouched
	_, _, err = store.LoadJoystick()
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWriteServoRejectsInvalid(t *testing.T) {
	otp := NewMemoryOTP()
	cal := DefaultServo()
	cal[2].Max = 3000
	_, err := NewStore(otp).WriteServo(cal, authToken)
	var corrupt *CorruptError
	require.True(t, errors.As(err, &corrupt))
	require.Equal(t, NewMemoryOTP().Bytes(), otp.Bytes())
}

func TestWriteJoystick(t *testing.T) {
	store := NewStore(NewMemoryOTP())
	cal := JoystickCalibration{XOffset: 7, YOffset: -3, XPosScale: 0.49, XNegScale: 0.5, YPosScale: 0.51, YNegScale: 0.5}
	bank, err := store.WriteJoystick(cal, authToken)
	require.NoError(t, err)
	require.Zero(t, bank)
	bank, err = store.WriteJoystick(cal, authToken)
	require.NoError(t, err)
	require.Equal(t, 2, bank)

	loaded, at, err := store.LoadJoystick()
	require.NoError(t, err)
	require.Equal(t, 2, at)
	require.Equal(t, cal, loaded)
}

func TestMemoryOTPWriteOnce(t *testing.T) {
	otp := NewMemoryOTP()
	require.ErrorIs(t, otp.ProgramByte(0, 0x00), ErrLocked)
	require.NoError(t, otp.Unlock())
	require.NoError(t, otp.ProgramByte(0, 0xF0))
	require.NoError(t, otp.ProgramByte(0, 0x3F))
	require.Equal(t, byte(0x30), otp.Bytes()[0])
	require.ErrorIs(t, otp.ProgramByte(int64(otp.Size()), 0), ErrOutOfRange)
	_, err := otp.ReadAt(make([]byte, 2), int64(otp.Size()-1))
	require.ErrorIs(t, err, ErrOutOfRange)
}

func TestDump(t *testing.T) {
	otp := NewMemoryOTP()
	programBank(t, otp, 2, []byte{JoystickMagic, 0x01})
	var out bytes.Buffer
	require.NoError(t, NewStore(otp).Dump(&out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, NumBanks)
	require.True(t, strings.HasPrefix(lines[2], "bank  2: cb 01 ff"))
}
