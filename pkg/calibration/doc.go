// Package calibration stores joystick and servo calibration in
// one-time-programmable banks.
//
// Banks form a log ordered by index: the highest occupied bank of a kind is
// the authoritative record. Records are never erased, a new record shadows
// an older one by being written into a higher bank.
package calibration
