package hat

import (
	"context"
	"errors"
	"log"

	"github.com/golang/glog"

	"github.com/robotalks/moab.go/pkg/calibration"
	fx "github.com/robotalks/moab.go/pkg/framework"
	"github.com/robotalks/moab.go/pkg/joystick"
	"github.com/robotalks/moab.go/pkg/joystick/device"
	"github.com/robotalks/moab.go/pkg/link"
	"github.com/robotalks/moab.go/pkg/plate"
)

// Devices are the peripherals of the hat.
type Devices struct {
	Link     link.Exchanger
	ADC      device.ADC
	Menu     device.EdgeSource
	Joystick device.EdgeSource
	Actuator plate.Actuator
	Display  Display
	Storage  calibration.StorageBackend
}

// Hat wires the tasks sharing the joystick state and the frame queue.
type Hat struct {
	Config *Config

	State      *joystick.State
	Store      *calibration.Store
	Sampler    *joystick.Sampler
	Plate      *plate.Plate
	Queue      *Queue
	Transport  *Transport
	Dispatcher *Dispatcher
}

// New creates a Hat from the config.
func (c *Config) New(dev Devices) (*Hat, error) {
	if dev.Link == nil || dev.ADC == nil || dev.Actuator == nil {
		return nil, errors.New("link, ADC and actuator are required")
	}
	h := &Hat{
		Config: c,
		State:  &joystick.State{},
		Queue:  NewQueue(),
	}
	if dev.Storage != nil {
		h.Store = calibration.NewStore(dev.Storage)
	}
	h.Sampler = c.Joystick.NewSampler(dev.ADC, h.State, h.Store).WithButtons(dev.Menu, dev.Joystick)
	h.Plate = plate.New(dev.Actuator, calibration.DefaultServo())
	h.Transport = &Transport{
		Link:         dev.Link,
		State:        h.State,
		Queue:        h.Queue,
		ErrorBackoff: c.ErrorBackoff,
	}
	h.Dispatcher = &Dispatcher{
		Queue:   h.Queue,
		Plate:   h.Plate,
		Display: dev.Display,
		Timeout: c.DispatchTimeout,
	}
	return h, nil
}

// MustNew creates a Hat and fails on error.
func (c *Config) MustNew(dev Devices) *Hat {
	h, err := c.New(dev)
	if err != nil {
		log.Fatalln(err)
	}
	return h
}

// Init loads the servo calibration and hovers the plate if configured.
// Any calibration fault leaves the defaults in place.
func (h *Hat) Init() {
	if h.Store != nil {
		cal, bank, err := h.Store.LoadServo()
		var corrupt *calibration.CorruptError
		switch {
		case errors.Is(err, calibration.ErrNotFound):
			glog.Warning("servo calibration not found, using defaults")
		case errors.As(err, &corrupt):
			glog.Errorf("servo calibration: %v, using defaults", err)
		case err != nil:
			glog.Errorf("servo calibration unreadable: %v, using defaults", err)
			cal = calibration.DefaultServo()
		default:
			glog.Infof("servo calibration found in bank %d", bank)
		}
		h.Plate.Calibration = cal
	}
	if h.Config.Hover {
		if err := h.Plate.Hover(); err != nil {
			glog.Errorf("hover: %v", err)
		}
	}
}

// Run implements Runnable.
func (h *Hat) Run(ctx context.Context) error {
	h.Init()
	return fx.NewRunnerWith(ctx).Go(
		fx.NamedRun("sampling", h.Sampler),
		fx.NamedRun("transport", h.Transport),
		fx.NamedRun("dispatch", h.Dispatcher),
	).Wait()
}
