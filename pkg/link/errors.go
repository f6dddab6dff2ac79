package link

import (
	"errors"
	"fmt"
)

var (
	// ErrFrameSize indicates a frame is not exactly FrameSize bytes.
	ErrFrameSize = errors.New("invalid frame size")
	// ErrTextOverflow indicates a text chunk would exceed MaxText.
	ErrTextOverflow = errors.New("text buffer overflow")
	// ErrShortExchange indicates fewer than FrameSize bytes were received.
	ErrShortExchange = errors.New("short exchange")
)

// UnknownCodeError reports a control code outside the command table.
type UnknownCodeError struct {
	Code Code
}

// Error implements error.
func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown control code %#02x", byte(e.Code))
}
