package joystick

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"

	"github.com/robotalks/moab.go/pkg/calibration"
	fx "github.com/robotalks/moab.go/pkg/framework"
	"github.com/robotalks/moab.go/pkg/joystick/device"
)

// edgeTimeout bounds each wait so watchers notice cancellation.
const edgeTimeout = 500 * time.Millisecond

// Sampler periodically converts the joystick position and publishes it
// together with the buttons into State. Buttons are also published on
// every edge.
type Sampler struct {
	Config

	ADC      device.ADC
	Menu     device.EdgeSource
	Joystick device.EdgeSource
	State    *State
	Store    *calibration.Store

	cal calibration.JoystickCalibration
}

// WithButtons sets the button inputs.
func (s *Sampler) WithButtons(menu, joystick device.EdgeSource) *Sampler {
	s.Menu, s.Joystick = menu, joystick
	return s
}

// Calibration returns the calibration in use.
func (s *Sampler) Calibration() calibration.JoystickCalibration {
	return s.cal
}

// LoadCalibration loads the joystick calibration. Defaults are used if the
// store has none.
func (s *Sampler) LoadCalibration() {
	if s.Store == nil {
		s.cal = calibration.DefaultJoystick()
		return
	}
	cal, bank, err := s.Store.LoadJoystick()
	switch {
	case errors.Is(err, calibration.ErrNotFound):
		glog.Warning("joystick calibration not found, using defaults")
	case err != nil:
		glog.Errorf("joystick calibration: %v, using defaults", err)
	default:
		glog.Infof("joystick calibration found in bank %d", bank)
	}
	s.cal = cal
}

// Run implements Runnable.
func (s *Sampler) Run(ctx context.Context) error {
	s.LoadCalibration()
	if s.Menu != nil {
		go s.watch(ctx, s.Menu, &s.State.Menu)
	}
	if s.Joystick != nil {
		go s.watch(ctx, s.Joystick, &s.State.Joystick)
	}
	period := s.Period
	if period <= 0 {
		period = defaultConfig.Period
	}
	return fx.Periodic(period, func(context.Context) error {
		return s.Sample()
	}).Run(ctx)
}

// Sample reads both axes and the buttons once. On an ADC error nothing
// is published.
func (s *Sampler) Sample() error {
	rawX, err := s.ADC.Read(s.XChannel)
	if err != nil {
		return fmt.Errorf("joystick x: %w", err)
	}
	rawY, err := s.ADC.Read(s.YChannel)
	if err != nil {
		return fmt.Errorf("joystick y: %w", err)
	}
	x, y := Position(rawX, rawY, s.cal)
	s.State.SetPosition(x, y)
	if s.Menu != nil {
		s.State.Menu.Store(s.pressed(s.Menu.Read()))
	}
	if s.Joystick != nil {
		s.State.Joystick.Store(s.pressed(s.Joystick.Read()))
	}
	glog.V(5).Infof("joystick raw (%d, %d) -> (%d, %d)", rawX, rawY, x, y)
	return nil
}

func (s *Sampler) pressed(level gpio.Level) bool {
	return level != gpio.Level(s.ActiveLow)
}

func (s *Sampler) watch(ctx context.Context, pin device.EdgeSource, btn *atomic.Bool) {
	for ctx.Err() == nil {
		if pin.WaitForEdge(edgeTimeout) {
			btn.Store(s.pressed(pin.Read()))
		}
	}
}
