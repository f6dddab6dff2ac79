package periph

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// Reference voltage and full scale of the counts reported by ADC.
const (
	refVolt  = 3.3
	maxCount = 4095
)

// ADC reads the joystick through an ADS1115 and reports counts scaled to
// the 12-bit range expected by the joystick package.
type ADC struct {
	dev  *ads1x15.Dev
	pins [4]ads1x15.PinADC
}

var adcChannels = [4]ads1x15.Channel{
	ads1x15.Channel0,
	ads1x15.Channel1,
	ads1x15.Channel2,
	ads1x15.Channel3,
}

// NewADC opens an ADS1115 on the bus.
func NewADC(bus i2c.Bus, addr uint16) (*ADC, error) {
	opts := ads1x15.DefaultOpts
	opts.I2cAddress = addr
	dev, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("ads1115: %w", err)
	}
	a := &ADC{dev: dev}
	for i, ch := range adcChannels {
		pin, err := dev.PinForChannel(ch, 4096*physic.MilliVolt, 860*physic.Hertz, ads1x15.SaveEnergy)
		if err != nil {
			return nil, fmt.Errorf("ads1115 channel %d: %w", i, err)
		}
		a.pins[i] = pin
	}
	return a, nil
}

// Read implements device.ADC.
func (a *ADC) Read(channel int) (uint16, error) {
	if channel < 0 || channel >= len(a.pins) {
		return 0, fmt.Errorf("no ADC channel %d", channel)
	}
	var s analog.Sample
	s, err := a.pins[channel].Read()
	if err != nil {
		return 0, err
	}
	return voltsToCount(s.V), nil
}

// Halt stops the converter.
func (a *ADC) Halt() error {
	var errs []error
	for _, pin := range a.pins {
		if pin != nil {
			errs = append(errs, pin.Halt())
		}
	}
	return firstErr(errs)
}

func voltsToCount(v physic.ElectricPotential) uint16 {
	count := float64(v) / float64(physic.Volt) / refVolt * maxCount
	switch {
	case count <= 0:
		return 0
	case count >= maxCount:
		return maxCount
	}
	return uint16(count + 0.5)
}

func firstErr(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
