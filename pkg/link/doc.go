// Package link implements the fixed-size frames exchanged between the host
// and the hat.
//
// Every transfer moves one frame in each direction. The host sends a
// ControlFrame whose first byte selects the command and whose remaining
// seven bytes carry the command payload. The hat answers with a StatusFrame
// holding the button bitmask and the joystick position.
package link
