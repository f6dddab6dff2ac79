package hat

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/robotalks/moab.go/pkg/joystick"
)

// Config defines the hat options.
type Config struct {
	Joystick joystick.Config `yaml:"joystick"`

	// ErrorBackoff is the pause after a failed exchange.
	ErrorBackoff time.Duration `yaml:"error_backoff"`
	// DispatchTimeout bounds each queue wait. Zero waits forever.
	DispatchTimeout time.Duration `yaml:"dispatch_timeout"`
	// Hover moves the plate to the hover position once started.
	Hover bool `yaml:"hover"`
}

var defaultConfig = Config{
	ErrorBackoff: 10 * time.Millisecond,
	Hover:        true,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	joystick.SetupFlags()
	flag.DurationVar(&defaultConfig.ErrorBackoff, "error-backoff", defaultConfig.ErrorBackoff, "Pause after a failed exchange.")
	flag.DurationVar(&defaultConfig.DispatchTimeout, "dispatch-timeout", defaultConfig.DispatchTimeout, "Queue wait timeout, 0 waits forever.")
	flag.BoolVar(&defaultConfig.Hover, "hover", defaultConfig.Hover, "Hover the plate on start.")
}

// Default gets default config.
func Default() *Config {
	defaultConfig.Joystick = *joystick.Default()
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := *Default()
	return &conf
}

// LoadFile reads a YAML file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conf := NewConfig()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// numADCChannels is the number of single-ended ADC inputs.
const numADCChannels = 4

// Validate checks the config.
func (c *Config) Validate() error {
	if c.Joystick.Period <= 0 {
		return errors.New("joystick.period must be positive")
	}
	for _, ch := range []int{c.Joystick.XChannel, c.Joystick.YChannel} {
		if ch < 0 || ch >= numADCChannels {
			return fmt.Errorf("joystick channel %d out of range", ch)
		}
	}
	if c.Joystick.XChannel == c.Joystick.YChannel {
		return errors.New("joystick x and y share a channel")
	}
	if c.ErrorBackoff < 0 || c.DispatchTimeout < 0 {
		return errors.New("durations must not be negative")
	}
	return nil
}
