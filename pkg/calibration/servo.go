package calibration

import "encoding/binary"

// Servo pulse width limits in microseconds.
const (
	MinPulseWidth = 375
	MaxPulseWidth = 2400
)

// Typical pulse widths used when no calibration is available.
const (
	TypicalMin = 1450
	TypicalMid = 1950
	TypicalMax = 2250
)

const servoRecordSize = 18

// ServoRange holds the pulse widths of one servo in microseconds.
type ServoRange struct {
	Min, Mid, Max uint16
}

// ServoCalibration holds the ranges of the three servos by channel.
type ServoCalibration [3]ServoRange

// DefaultServo returns the typical servo calibration.
func DefaultServo() ServoCalibration {
	r := ServoRange{Min: TypicalMin, Mid: TypicalMid, Max: TypicalMax}
	return ServoCalibration{r, r, r}
}

// Validate checks every pulse width is within the legal range.
func (c ServoCalibration) Validate() error {
	if err := c.check(-1); err != nil {
		return err
	}
	return nil
}

func (c ServoCalibration) check(bank int) *CorruptError {
	for i, r := range c {
		for _, v := range []uint16{r.Min, r.Mid, r.Max} {
			if v < MinPulseWidth || v > MaxPulseWidth {
				return &CorruptError{Bank: bank, Servo: i, Value: v}
			}
		}
	}
	return nil
}

// MarshalBinary encodes all min values, then mid, then max.
func (c ServoCalibration) MarshalBinary() ([]byte, error) {
	b := make([]byte, servoRecordSize)
	for i, r := range c {
		binary.LittleEndian.PutUint16(b[i*2:], r.Min)
		binary.LittleEndian.PutUint16(b[6+i*2:], r.Mid)
		binary.LittleEndian.PutUint16(b[12+i*2:], r.Max)
	}
	return b, nil
}

// UnmarshalBinary decodes a record produced by MarshalBinary.
func (c *ServoCalibration) UnmarshalBinary(b []byte) error {
	if len(b) < servoRecordSize {
		return ErrOutOfRange
	}
	for i := range c {
		c[i].Min = binary.LittleEndian.Uint16(b[i*2:])
		c[i].Mid = binary.LittleEndian.Uint16(b[6+i*2:])
		c[i].Max = binary.LittleEndian.Uint16(b[12+i*2:])
	}
	return nil
}
