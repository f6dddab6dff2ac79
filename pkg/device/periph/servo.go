package periph

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
)

// servoPeriod is the PWM period driving the servos.
const servoPeriod = 3300 * time.Microsecond

// Servos drives the three servo PWM outputs and the servo power switch.
type Servos struct {
	Pins  [3]gpio.PinOut
	Power gpio.PinOut
}

// OpenServos looks up the pins by name.
func OpenServos(pins [3]string, enable string) (*Servos, error) {
	s := &Servos{}
	for i, name := range pins {
		p := gpioreg.ByName(name)
		if p == nil {
			return nil, fmt.Errorf("servo %d: no pin %q", i, name)
		}
		s.Pins[i] = p
	}
	if s.Power = gpioreg.ByName(enable); s.Power == nil {
		return nil, fmt.Errorf("no enable pin %q", enable)
	}
	return s, nil
}

// SetPulseWidth implements plate.Actuator.
func (s *Servos) SetPulseWidth(channel int, usec uint32) error {
	if channel < 0 || channel >= len(s.Pins) {
		return fmt.Errorf("no servo channel %d", channel)
	}
	return s.Pins[channel].PWM(pulseDuty(usec), physic.PeriodToFrequency(servoPeriod))
}

// Enable implements plate.Actuator.
func (s *Servos) Enable(on bool) error {
	return s.Power.Out(gpio.Level(on))
}

// Halt stops the PWM outputs and removes servo power.
func (s *Servos) Halt() error {
	errs := []error{s.Power.Out(gpio.Low)}
	for _, p := range s.Pins {
		errs = append(errs, p.Halt())
	}
	return firstErr(errs)
}

func pulseDuty(usec uint32) gpio.Duty {
	period := uint64(servoPeriod / time.Microsecond)
	if uint64(usec) >= period {
		return gpio.DutyMax
	}
	return gpio.Duty(uint64(usec) * uint64(gpio.DutyMax) / period)
}

// OpenButton configures a pulled-up input with edge detection on both
// edges.
func OpenButton(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("no button pin %q", name)
	}
	if err := p.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("button %s: %w", name, err)
	}
	return p, nil
}
