package hat

import "fmt"

// DisplayIcon selects the icon shown with big text.
type DisplayIcon byte

// Display icons.
const (
	IconBlank DisplayIcon = iota
	IconUpDown
	IconDown
	IconUp
	IconDot
	IconPause
	IconCheck
	IconX

	numDisplayIcons
)

// Valid reports whether the icon is known.
func (i DisplayIcon) Valid() bool { return i < numDisplayIcons }

// PowerIcon selects one of the IEC power symbols.
type PowerIcon byte

// Power icons.
const (
	PowerSymbol PowerIcon = iota
	PowerToggle
	PowerOn
	PowerSleep
	PowerOff

	numPowerIcons
)

// Valid reports whether the icon is known.
func (i PowerIcon) Valid() bool { return i < numPowerIcons }

// InvalidIconError rejects a display command with an unknown icon.
type InvalidIconError struct {
	Icon  byte
	Power bool
}

// Error implements error.
func (e *InvalidIconError) Error() string {
	if e.Power {
		return fmt.Sprintf("invalid power icon %d", e.Icon)
	}
	return fmt.Sprintf("invalid icon %d", e.Icon)
}

// Display renders text on the hat screen.
type Display interface {
	ShowBigTextIcon(text string, icon DisplayIcon) error
	ShowBigText(text string) error
	ShowSmallText(text string) error
	ShowPowerIcon(text string, icon PowerIcon) error
}
