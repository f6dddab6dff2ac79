package periph

import (
	"fmt"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Board holds the opened hat peripherals.
type Board struct {
	ADC      *ADC
	Menu     gpio.PinIO
	Joystick gpio.PinIO
	Servos   *Servos
	Display  *OLED

	bus  i2c.BusCloser
	oled spi.PortCloser
}

// Init initializes the periph host drivers.
func Init() error {
	state, err := host.Init()
	if err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	glog.V(1).Infof("periph drivers loaded: %d, failed: %d", len(state.Loaded), len(state.Failed))
	return nil
}

// OpenBoard opens every peripheral in the config. The display is optional
// and skipped if OLEDPort is empty.
func OpenBoard(conf *Config) (b *Board, err error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if err := Init(); err != nil {
		return nil, err
	}
	b = &Board{}
	defer func() {
		if err != nil {
			b.Close()
		}
	}()
	if b.bus, err = i2creg.Open(conf.I2CBus); err != nil {
		return nil, fmt.Errorf("open I2C %q: %w", conf.I2CBus, err)
	}
	if b.ADC, err = NewADC(b.bus, conf.ADCAddress); err != nil {
		return nil, err
	}
	if b.Menu, err = OpenButton(conf.MenuPin); err != nil {
		return nil, err
	}
	if b.Joystick, err = OpenButton(conf.JoystickPin); err != nil {
		return nil, err
	}
	if b.Servos, err = OpenServos(conf.ServoPins, conf.EnablePin); err != nil {
		return nil, err
	}
	if conf.OLEDPort != "" {
		dc := gpioreg.ByName(conf.OLEDDCPin)
		if dc == nil {
			return nil, fmt.Errorf("no display DC pin %q", conf.OLEDDCPin)
		}
		if b.oled, err = spireg.Open(conf.OLEDPort); err != nil {
			return nil, fmt.Errorf("open SPI %q: %w", conf.OLEDPort, err)
		}
		if b.Display, err = NewOLED(b.oled, dc); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Close halts the devices and releases the buses.
func (b *Board) Close() error {
	var errs []error
	if b.Servos != nil {
		errs = append(errs, b.Servos.Halt())
	}
	if b.ADC != nil {
		errs = append(errs, b.ADC.Halt())
	}
	if b.oled != nil {
		errs = append(errs, b.oled.Close())
	}
	if b.bus != nil {
		errs = append(errs, b.bus.Close())
	}
	return firstErr(errs)
}
