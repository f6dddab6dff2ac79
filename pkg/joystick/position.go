// Package joystick samples the joystick and buttons and publishes them
// for the link transport.
package joystick

import (
	"math"

	"github.com/robotalks/moab.go/pkg/calibration"
)

// ADC characteristics.
const (
	ADCMax       = 4095
	ADCMaxVolt   = 3.3
	CenterVolt   = ADCMaxVolt / 2
	voltPerCount = ADCMaxVolt / ADCMax

	// Raw counts above underflowCount wrapped below zero after the offset
	// was subtracted.
	underflowCount = 10000
)

// Position converts raw ADC counts to percent of travel in [-100, 100].
func Position(rawX, rawY uint16, cal calibration.JoystickCalibration) (x, y int8) {
	x = axisPercent(rawX, cal.XOffset, cal.XPosScale, cal.XNegScale)
	y = axisPercent(rawY, cal.YOffset, cal.YPosScale, cal.YNegScale)
	return
}

func axisPercent(raw uint16, offset int16, posScale, negScale float32) int8 {
	// the offset wraps around like the 16-bit ADC register
	raw -= uint16(offset)
	switch {
	case raw > underflowCount:
		return 100
	case raw > ADCMax:
		return -100
	}
	v := float64(raw) * voltPerCount
	scale := float64(posScale)
	if v-CenterVolt > 0 {
		scale = float64(negScale)
	}
	percent := -((v - CenterVolt) * (100 / CenterVolt) / scale)
	switch {
	case math.IsNaN(percent):
		return 0
	case percent > 100:
		return 100
	case percent < -100:
		return -100
	}
	return int8(percent)
}
