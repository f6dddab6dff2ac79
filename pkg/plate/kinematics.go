// Package plate converts plate tilt into servo pulse widths and drives the
// three servos.
package plate

import (
	"math"

	"github.com/robotalks/moab.go/pkg/calibration"
)

// Geometry in millimeters.
const (
	ArmLength   = 55.0
	SideLength  = 170.87
	PivotHeight = 80.0
	sqrt3       = 1.732050808
)

// Servo arm angles in degrees.
const (
	AngleMin   = 90.0
	AngleMax   = 160.0
	ArmTravel  = 70.0
	HoverAngle = 150.0
)

// NumServos is the number of servos driving the plate.
const NumServos = 3

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ServoAngles computes the servo arm angles for a plate tilt in degrees,
// indexed by servo channel. The results are not clamped to the
// mechanical range.
func ServoAngles(thetaX, thetaY float64) [NumServos]float64 {
	sinY := math.Sin(radians(-thetaY))
	sinX := math.Sin(radians(thetaX))

	z1 := PivotHeight + sinY*(SideLength/sqrt3)
	r := PivotHeight - sinY*(SideLength/(2*sqrt3))
	z2 := r + sinX*(SideLength/2)
	z3 := r - sinX*(SideLength/2)

	var a [NumServos]float64
	for i, z := range []float64{z1, z2, z3} {
		z = clamp(z, -2*ArmLength, 2*ArmLength)
		a[i] = 180 - degrees(math.Asin(z/(2*ArmLength)))
	}
	// servos are mounted rotated by 120 degrees
	return [NumServos]float64{a[2], a[0], a[1]}
}

// PulseWidth maps an arm angle to a pulse width in microseconds. The angle
// is clamped to [AngleMin, AngleMax] and the slope uses the nominal
// ArmTravel regardless of the calibrated span.
func PulseWidth(angle float64, r calibration.ServoRange) uint32 {
	angle = clamp(angle, AngleMin, AngleMax)
	usecPerDegree := float64(int(r.Max)-int(r.Min)) / ArmTravel
	return uint32((angle-AngleMin)*usecPerDegree + float64(r.Min))
}

// ComputeServoPulses computes the pulse width of each servo channel for a
// plate tilt.
func ComputeServoPulses(thetaX, thetaY float64, cal calibration.ServoCalibration) (pulses [NumServos]uint32) {
	for ch, angle := range ServoAngles(thetaX, thetaY) {
		pulses[ch] = PulseWidth(angle, cal[ch])
	}
	return
}
