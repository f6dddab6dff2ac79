package joystick

import (
	"sync/atomic"

	"github.com/robotalks/moab.go/pkg/link"
)

// State holds the latest joystick position and button levels. Each field
// is published independently, last write wins.
type State struct {
	X        atomic.Int32
	Y        atomic.Int32
	Menu     atomic.Bool
	Joystick atomic.Bool
}

// SetPosition publishes the joystick position.
func (s *State) SetPosition(x, y int8) {
	s.X.Store(int32(x))
	s.Y.Store(int32(y))
}

// Buttons returns the button bitmask.
func (s *State) Buttons() (b link.Buttons) {
	if s.Menu.Load() {
		b |= link.ButtonMenu
	}
	if s.Joystick.Load() {
		b |= link.ButtonJoystick
	}
	return
}

// Snapshot reads the published values.
func (s *State) Snapshot() link.Status {
	return link.Status{
		Buttons: s.Buttons(),
		X:       int8(s.X.Load()),
		Y:       int8(s.Y.Load()),
	}
}
