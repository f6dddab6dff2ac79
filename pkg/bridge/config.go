package bridge

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/robotalks/moab.go/pkg/env"
)

// Config provides the options to reach the broker.
type Config struct {
	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string `yaml:"mqtt"`
	// ID names the device in topics.
	ID string `yaml:"id"`
	// FeedAddr is the listen address of the status feed, empty to disable.
	FeedAddr string `yaml:"feed_addr"`
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/moab/",
}

func init() {
	if val := os.Getenv("MOAB_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("MOAB_ID"); val != "" {
		defaultConfig.ID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable.")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Device ID, defaults to the machine ID.")
	flag.StringVar(&defaultConfig.FeedAddr, "feed", defaultConfig.FeedAddr, "Status feed listen address, e.g. :8080.")
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

// DeviceID returns ID or the machine ID if not set.
func (c *Config) DeviceID() string {
	if c.ID != "" {
		return c.ID
	}
	return env.MachineID()
}

// NewQueue creates a Queue and connects to the broker.
func (c *Config) NewQueue() (*Queue, error) {
	q, err := NewQueueFromURL(c.MQTTBrokerURL)
	if err != nil {
		return nil, fmt.Errorf("MQTT URL %q: %w", c.MQTTBrokerURL, err)
	}
	if err := q.Connect(); err != nil {
		return nil, err
	}
	return q, nil
}

// MustNewQueue creates a Queue and fails on error.
func (c *Config) MustNewQueue() *Queue {
	q, err := c.NewQueue()
	if err != nil {
		log.Fatalln(err)
	}
	return q
}
