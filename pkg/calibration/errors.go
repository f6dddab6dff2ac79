package calibration

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates no occupied bank was found and defaults are used.
	ErrNotFound = errors.New("calibration not found")
	// ErrUnauthorized indicates a write was refused due to a wrong token.
	ErrUnauthorized = errors.New("calibration write not authorized")
	// ErrNoFreeBank indicates every candidate bank is already written.
	ErrNoFreeBank = errors.New("no erased calibration bank")
	// ErrLocked indicates a program attempt without unlocking the storage.
	ErrLocked = errors.New("storage locked")
	// ErrOutOfRange indicates an access beyond the storage size.
	ErrOutOfRange = errors.New("storage access out of range")
)

// CorruptError reports a servo record with an out-of-range value.
// Defaults are used in place of the whole record.
type CorruptError struct {
	Bank  int
	Servo int
	Value uint16
}

// Error implements error.
func (e *CorruptError) Error() string {
	return fmt.Sprintf("servo calibration in bank %d corrupt: servo %d value %d out of range [%d, %d]",
		e.Bank, e.Servo, e.Value, MinPulseWidth, MaxPulseWidth)
}
