package joystick

import (
	"flag"
	"time"

	"github.com/robotalks/moab.go/pkg/calibration"
	"github.com/robotalks/moab.go/pkg/joystick/device"
)

// Config defines the sampling configuration.
type Config struct {
	Period    time.Duration `yaml:"period"`
	XChannel  int           `yaml:"x_channel"`
	YChannel  int           `yaml:"y_channel"`
	ActiveLow bool          `yaml:"active_low"`
}

var defaultConfig = Config{
	Period:    16 * time.Millisecond,
	XChannel:  0,
	YChannel:  1,
	ActiveLow: true,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.Period, "joystick-period", defaultConfig.Period, "Joystick sampling period.")
	flag.IntVar(&defaultConfig.XChannel, "joystick-x", defaultConfig.XChannel, "ADC channel of joystick X.")
	flag.IntVar(&defaultConfig.YChannel, "joystick-y", defaultConfig.YChannel, "ADC channel of joystick Y.")
	flag.BoolVar(&defaultConfig.ActiveLow, "buttons-active-low", defaultConfig.ActiveLow, "Buttons read low when pressed.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewSampler creates a Sampler using the config.
func (c *Config) NewSampler(adc device.ADC, state *State, store *calibration.Store) *Sampler {
	return &Sampler{
		Config: *c,
		ADC:    adc,
		State:  state,
		Store:  store,
	}
}
