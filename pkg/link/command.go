package link

import "encoding/binary"

// Code is the control code in byte 0 of a ControlFrame.
type Code byte

// Control codes.
const (
	CodeNoop            Code = 0x00
	CodeServoEnable     Code = 0x01
	CodeServoDisable    Code = 0x02
	CodeControlInfo     Code = 0x03
	CodeSetPlateAngles  Code = 0x04
	CodeSetServoAngles  Code = 0x05
	CodeCopyString      Code = 0x80
	CodeShowBigTextIcon Code = 0x81
	CodeShowBigText     Code = 0x82
	CodeShowSmallText   Code = 0x83
	CodeShowPowerIcon   Code = 0x84
)

var codeNames = map[Code]string{
	CodeNoop:            "noop",
	CodeServoEnable:     "servo-enable",
	CodeServoDisable:    "servo-disable",
	CodeControlInfo:     "control-info",
	CodeSetPlateAngles:  "set-plate-angles",
	CodeSetServoAngles:  "set-servo-angles",
	CodeCopyString:      "copy-string",
	CodeShowBigTextIcon: "show-big-text-icon",
	CodeShowBigText:     "show-big-text",
	CodeShowSmallText:   "show-small-text",
	CodeShowPowerIcon:   "show-power-icon",
}

// String returns the name of a known code or its hex value.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return (&UnknownCodeError{Code: c}).Error()
}

// IsCommit reports whether the code displays the accumulated text.
func (c Code) IsCommit() bool {
	return c >= CodeShowBigTextIcon && c <= CodeShowPowerIcon
}

// Command is a decoded ControlFrame. The concrete type is selected by the
// control code and is one of the types in this file.
type Command interface {
	Code() Code
	Encode() ControlFrame
}

// Noop does nothing. The host sends it to poll the status.
type Noop struct{}

// ServoEnable powers the servos.
type ServoEnable struct{}

// ServoDisable removes power from the servos.
type ServoDisable struct{}

// ControlInfo carries opaque control information.
type ControlInfo struct {
	Payload [PayloadSize]byte
}

// SetPlateAngles tilts the plate, angles in degrees.
type SetPlateAngles struct {
	ThetaX, ThetaY int8
}

// SetServoAngles sets the absolute angle of each servo in centidegrees.
type SetServoAngles struct {
	Centidegrees [3]uint16
}

// CopyString appends a chunk to the text buffer. Unused bytes are zero.
type CopyString struct {
	Chunk [PayloadSize]byte
}

// ShowBigTextIcon displays the text buffer in a large font with an icon.
type ShowBigTextIcon struct {
	Icon byte
}

// ShowBigText displays the text buffer in a large font.
type ShowBigText struct{}

// ShowSmallText displays the text buffer in a small scrolling font.
type ShowSmallText struct{}

// ShowPowerIcon displays the text buffer with a power symbol.
type ShowPowerIcon struct {
	Icon byte
}

func (Noop) Code() Code            { return CodeNoop }
func (ServoEnable) Code() Code     { return CodeServoEnable }
func (ServoDisable) Code() Code    { return CodeServoDisable }
func (ControlInfo) Code() Code     { return CodeControlInfo }
func (SetPlateAngles) Code() Code  { return CodeSetPlateAngles }
func (SetServoAngles) Code() Code  { return CodeSetServoAngles }
func (CopyString) Code() Code      { return CodeCopyString }
func (ShowBigTextIcon) Code() Code { return CodeShowBigTextIcon }
func (ShowBigText) Code() Code     { return CodeShowBigText }
func (ShowSmallText) Code() Code   { return CodeShowSmallText }
func (ShowPowerIcon) Code() Code   { return CodeShowPowerIcon }

func frameOf(c Code) (f ControlFrame) {
	f[0] = byte(c)
	return
}

func (c Noop) Encode() ControlFrame          { return frameOf(c.Code()) }
func (c ServoEnable) Encode() ControlFrame   { return frameOf(c.Code()) }
func (c ServoDisable) Encode() ControlFrame  { return frameOf(c.Code()) }
func (c ShowBigText) Encode() ControlFrame   { return frameOf(c.Code()) }
func (c ShowSmallText) Encode() ControlFrame { return frameOf(c.Code()) }

func (c ControlInfo) Encode() ControlFrame {
	f := frameOf(c.Code())
	copy(f[1:], c.Payload[:])
	return f
}

func (c SetPlateAngles) Encode() ControlFrame {
	f := frameOf(c.Code())
	f[1], f[2] = byte(c.ThetaX), byte(c.ThetaY)
	return f
}

func (c SetServoAngles) Encode() ControlFrame {
	f := frameOf(c.Code())
	for i, v := range c.Centidegrees {
		binary.BigEndian.PutUint16(f[1+i*2:], v)
	}
	return f
}

func (c CopyString) Encode() ControlFrame {
	f := frameOf(c.Code())
	copy(f[1:], c.Chunk[:])
	return f
}

func (c ShowBigTextIcon) Encode() ControlFrame {
	f := frameOf(c.Code())
	f[1] = c.Icon
	return f
}

func (c ShowPowerIcon) Encode() ControlFrame {
	f := frameOf(c.Code())
	f[1] = c.Icon
	return f
}

// Decode decodes the frame. See DecodeControl.
func (f *ControlFrame) Decode() (Command, error) {
	return DecodeControl(f[:])
}

// DecodeControl decodes a ControlFrame. Every control code either yields
// a Command or an *UnknownCodeError.
func DecodeControl(b []byte) (Command, error) {
	if len(b) != FrameSize {
		return nil, ErrFrameSize
	}
	payload := b[1:FrameSize]
	switch code := Code(b[0]); code {
	case CodeNoop:
		return Noop{}, nil
	case CodeServoEnable:
		return ServoEnable{}, nil
	case CodeServoDisable:
		return ServoDisable{}, nil
	case CodeControlInfo:
		var cmd ControlInfo
		copy(cmd.Payload[:], payload)
		return cmd, nil
	case CodeSetPlateAngles:
		return SetPlateAngles{ThetaX: int8(payload[0]), ThetaY: int8(payload[1])}, nil
	case CodeSetServoAngles:
		var cmd SetServoAngles
		for i := range cmd.Centidegrees {
			cmd.Centidegrees[i] = binary.BigEndian.Uint16(payload[i*2:])
		}
		return cmd, nil
	case CodeCopyString:
		var cmd CopyString
		copy(cmd.Chunk[:], payload)
		return cmd, nil
	case CodeShowBigTextIcon:
		return ShowBigTextIcon{Icon: payload[0]}, nil
	case CodeShowBigText:
		return ShowBigText{}, nil
	case CodeShowSmallText:
		return ShowSmallText{}, nil
	case CodeShowPowerIcon:
		return ShowPowerIcon{Icon: payload[0]}, nil
	default:
		return nil, &UnknownCodeError{Code: code}
	}
}
