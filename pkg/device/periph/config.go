package periph

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config names the buses and pins used on the board.
type Config struct {
	I2CBus      string    `yaml:"i2c_bus"`
	ADCAddress  uint16    `yaml:"adc_address"`
	MenuPin     string    `yaml:"menu_pin"`
	JoystickPin string    `yaml:"joystick_pin"`
	EnablePin   string    `yaml:"enable_pin"`
	ServoPins   [3]string `yaml:"servo_pins"`
	OLEDPort    string    `yaml:"oled_port"`
	OLEDDCPin   string    `yaml:"oled_dc_pin"`
	// LinkPort is the SPI port of the host link, used by the host only.
	LinkPort string `yaml:"link_port"`
	LinkHz   int64  `yaml:"link_hz"`
}

// DefaultConfig returns the wiring of the reference board.
func DefaultConfig() Config {
	return Config{
		ADCAddress:  0x48,
		MenuPin:     "GPIO27",
		JoystickPin: "GPIO22",
		EnablePin:   "GPIO6",
		ServoPins:   [3]string{"GPIO12", "GPIO13", "GPIO18"},
		OLEDPort:    "SPI1.0",
		OLEDDCPin:   "GPIO24",
		LinkPort:    "SPI0.0",
		LinkHz:      100000,
	}
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.ADCAddress == 0 || c.ADCAddress > 0x7f {
		return fmt.Errorf("invalid ADC address %#x", c.ADCAddress)
	}
	for i, name := range c.ServoPins {
		if name == "" {
			return fmt.Errorf("servo pin %d not set", i)
		}
	}
	if c.EnablePin == "" {
		return errors.New("enable pin not set")
	}
	if c.LinkHz < 0 {
		return errors.New("link_hz must not be negative")
	}
	return nil
}

// LoadConfig reads a YAML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	conf := DefaultConfig()
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &conf, nil
}
