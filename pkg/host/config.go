package host

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config defines the host options.
type Config struct {
	// MaxAngle is the plate tilt at full joystick deflection.
	MaxAngle      float64       `yaml:"max_angle"`
	ServoOffsets  [3]float64    `yaml:"servo_offsets"`
	ExchangeDelay time.Duration `yaml:"exchange_delay"`
	ChunkDelay    time.Duration `yaml:"chunk_delay"`
	Interval      time.Duration `yaml:"interval"`
}

var defaultConfig = Config{
	MaxAngle:      22,
	ExchangeDelay: 5 * time.Millisecond,
	ChunkDelay:    10 * time.Millisecond,
	Interval:      33 * time.Millisecond,
}

func init() {
	if val := os.Getenv("MOAB_SERVO_OFFSETS"); val != "" {
		if err := defaultConfig.ParseOffsets(val); err != nil {
			fmt.Fprintf(os.Stderr, "MOAB_SERVO_OFFSETS: %v\n", err)
		}
	}
}

type offsetsFlag struct{ conf *Config }

func (f offsetsFlag) String() string {
	if f.conf == nil {
		return ""
	}
	o := f.conf.ServoOffsets
	return fmt.Sprintf("%g,%g,%g", o[0], o[1], o[2])
}

func (f offsetsFlag) Set(val string) error { return f.conf.ParseOffsets(val) }

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.MaxAngle, "max-angle", defaultConfig.MaxAngle, "Plate tilt at full joystick deflection in degrees.")
	flag.Var(offsetsFlag{&defaultConfig}, "servo-offsets", "Servo offsets in degrees, comma separated.")
	flag.DurationVar(&defaultConfig.ExchangeDelay, "exchange-delay", defaultConfig.ExchangeDelay, "Pause after each exchange.")
	flag.DurationVar(&defaultConfig.ChunkDelay, "chunk-delay", defaultConfig.ChunkDelay, "Pause after each text chunk.")
	flag.DurationVar(&defaultConfig.Interval, "interval", defaultConfig.Interval, "Control loop interval.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// ParseOffsets parses three comma separated servo offsets.
func (c *Config) ParseOffsets(val string) error {
	parts := strings.Split(val, ",")
	if len(parts) != len(c.ServoOffsets) {
		return fmt.Errorf("expect %d offsets, got %q", len(c.ServoOffsets), val)
	}
	var offsets [3]float64
	for i, s := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("servo offset %d: %w", i+1, err)
		}
		offsets[i] = v
	}
	c.ServoOffsets = offsets
	return nil
}
