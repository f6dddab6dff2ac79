package link

// FrameSize is the size of frames in both directions.
const FrameSize = 8

// PayloadSize is the size of the payload following the control code.
const PayloadSize = FrameSize - 1

// ControlFrame is sent from the host to the hat.
type ControlFrame [FrameSize]byte

// Code returns the control code.
func (f ControlFrame) Code() Code {
	return Code(f[0])
}

// StatusFrame is sent from the hat to the host.
type StatusFrame [FrameSize]byte

// Buttons is the button bitmask carried in byte 0 of a StatusFrame.
type Buttons byte

// Button bits.
const (
	ButtonMenu     Buttons = 1 << 0
	ButtonJoystick Buttons = 1 << 1

	buttonsMask = ButtonMenu | ButtonJoystick
)

// Menu reports whether the menu button is pressed.
func (b Buttons) Menu() bool { return b&ButtonMenu != 0 }

// Joystick reports whether the joystick button is pressed.
func (b Buttons) Joystick() bool { return b&ButtonJoystick != 0 }

// Status is the decoded content of a StatusFrame.
type Status struct {
	Buttons Buttons
	X, Y    int8
}

// EncodeStatus builds a StatusFrame. Reserved bits and padding are zero.
func EncodeStatus(buttons Buttons, x, y int8) (f StatusFrame) {
	f[0] = byte(buttons & buttonsMask)
	f[1] = byte(x)
	f[2] = byte(y)
	return
}

// Encode builds the StatusFrame of s.
func (s Status) Encode() StatusFrame {
	return EncodeStatus(s.Buttons, s.X, s.Y)
}

// DecodeStatus parses a StatusFrame received by the host.
func DecodeStatus(b []byte) (Status, error) {
	if len(b) != FrameSize {
		return Status{}, ErrFrameSize
	}
	return Status{
		Buttons: Buttons(b[0]) & buttonsMask,
		X:       int8(b[1]),
		Y:       int8(b[2]),
	}, nil
}
