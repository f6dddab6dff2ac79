package plate

import (
	"fmt"
	"sync"

	"github.com/golang/glog"

	"github.com/robotalks/moab.go/pkg/calibration"
	fx "github.com/robotalks/moab.go/pkg/framework"
)

// Actuator drives the servo outputs.
type Actuator interface {
	// SetPulseWidth sets the pulse width of a channel in microseconds.
	SetPulseWidth(channel int, usec uint32) error
	// Enable switches servo power.
	Enable(on bool) error
}

// ChannelError reports an actuation failure on one channel.
type ChannelError struct {
	Channel int
	Err     error
}

// Error implements error.
func (e *ChannelError) Error() string {
	return fmt.Sprintf("servo channel %d: %v", e.Channel, e.Err)
}

// Unwrap returns the underlying error.
func (e *ChannelError) Unwrap() error {
	return e.Err
}

// Plate owns the Actuator. All updates hold one lock for the duration of
// the actuation calls only.
type Plate struct {
	Calibration calibration.ServoCalibration

	actuator Actuator
	pulses   [NumServos]uint32
	enabled  bool
	lock     sync.Mutex
}

// New creates a Plate.
func New(actuator Actuator, cal calibration.ServoCalibration) *Plate {
	return &Plate{actuator: actuator, Calibration: cal}
}

// SetTilt tilts the plate, angles in degrees.
func (p *Plate) SetTilt(thetaX, thetaY float64) error {
	return p.SetServoAngles(ServoAngles(thetaX, thetaY))
}

// SetServoAngles sets the arm angle of every servo. Every channel is
// attempted; failures are returned as an aggregate of *ChannelError.
func (p *Plate) SetServoAngles(angles [NumServos]float64) error {
	var errs fx.AggregatedError
	p.lock.Lock()
	for ch, angle := range angles {
		errs.Add(p.setLocked(ch, angle))
	}
	p.lock.Unlock()
	return errs.Aggregate()
}

// SetServoAngle sets the arm angle of one servo.
func (p *Plate) SetServoAngle(channel int, angle float64) error {
	if channel < 0 || channel >= NumServos {
		return &ChannelError{Channel: channel, Err: fmt.Errorf("no such channel")}
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.setLocked(channel, angle)
}

func (p *Plate) setLocked(ch int, angle float64) error {
	pulse := PulseWidth(angle, p.Calibration[ch])
	if err := p.actuator.SetPulseWidth(ch, pulse); err != nil {
		return &ChannelError{Channel: ch, Err: err}
	}
	p.pulses[ch] = pulse
	glog.V(4).Infof("servo %d: angle %.2f pulse %dus", ch, angle, pulse)
	return nil
}

// Hover moves all servos to the hover angle.
func (p *Plate) Hover() error {
	return p.SetServoAngles([NumServos]float64{HoverAngle, HoverAngle, HoverAngle})
}

// Enable switches servo power.
func (p *Plate) Enable(on bool) error {
	p.lock.Lock()
	defer p.lock.Unlock()
	if err := p.actuator.Enable(on); err != nil {
		return err
	}
	p.enabled = on
	return nil
}

// Enabled reports whether servo power is on.
func (p *Plate) Enabled() bool {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.enabled
}

// Pulses returns the last pulse width set on each channel.
func (p *Plate) Pulses() [NumServos]uint32 {
	p.lock.Lock()
	defer p.lock.Unlock()
	return p.pulses
}
