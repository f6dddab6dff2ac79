package calibration

import (
	"encoding/binary"
	"math"
)

// JoystickMagic marks a bank holding a joystick record.
const JoystickMagic = 0xCB

const joystickRecordSize = 20

// JoystickCalibration corrects the joystick center and travel.
// Offsets are raw ADC counts. Pos scales apply to the positive travel
// of an axis, Neg scales to the negative travel.
type JoystickCalibration struct {
	XOffset   int16
	YOffset   int16
	XPosScale float32
	XNegScale float32
	YPosScale float32
	YNegScale float32
}

// DefaultJoystick returns the pre-calibration joystick values.
func DefaultJoystick() JoystickCalibration {
	return JoystickCalibration{
		XPosScale: 0.5,
		XNegScale: 0.5,
		YPosScale: 0.5,
		YNegScale: 0.5,
	}
}

// MarshalBinary encodes the record without the magic byte.
func (c JoystickCalibration) MarshalBinary() ([]byte, error) {
	b := make([]byte, joystickRecordSize)
	binary.LittleEndian.PutUint16(b[0:], uint16(c.XOffset))
	binary.LittleEndian.PutUint16(b[2:], uint16(c.YOffset))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(c.XPosScale))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(c.XNegScale))
	binary.LittleEndian.PutUint32(b[12:], math.Float32bits(c.YPosScale))
	binary.LittleEndian.PutUint32(b[16:], math.Float32bits(c.YNegScale))
	return b, nil
}

// UnmarshalBinary decodes a record without the magic byte.
func (c *JoystickCalibration) UnmarshalBinary(b []byte) error {
	if len(b) < joystickRecordSize {
		return ErrOutOfRange
	}
	c.XOffset = int16(binary.LittleEndian.Uint16(b[0:]))
	c.YOffset = int16(binary.LittleEndian.Uint16(b[2:]))
	c.XPosScale = math.Float32frombits(binary.LittleEndian.Uint32(b[4:]))
	c.XNegScale = math.Float32frombits(binary.LittleEndian.Uint32(b[8:]))
	c.YPosScale = math.Float32frombits(binary.LittleEndian.Uint32(b[12:]))
	c.YNegScale = math.Float32frombits(binary.LittleEndian.Uint32(b[16:]))
	return nil
}
