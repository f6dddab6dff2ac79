// Package device defines the inputs sampled by the joystick package.
package device

import (
	"time"

	"periph.io/x/conn/v3/gpio"
)

// ADC reads raw conversions.
type ADC interface {
	// Read returns the raw 12-bit count of a channel.
	Read(channel int) (uint16, error)
}

// EdgeSource is a button input with edge detection. It matches the subset
// of gpio.PinIn used for buttons.
type EdgeSource interface {
	// WaitForEdge blocks until an edge or the timeout. A negative timeout
	// waits forever.
	WaitForEdge(timeout time.Duration) bool
	// Read returns the current level.
	Read() gpio.Level
}
