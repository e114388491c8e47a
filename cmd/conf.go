package main

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/scitags/nlmsg-go/internal/api"
	"github.com/scitags/nlmsg-go/internal/capture"
	"github.com/scitags/nlmsg-go/internal/metrics"
	"github.com/scitags/nlmsg-go/netlink"
)

type Config struct {
	ByteOrder string `yaml:"byteOrder"`
	Family    string `yaml:"family"`
	Verbosity string `yaml:"verbosity"`

	// Leaving these out disables the corresponding server.
	Api     *api.Config     `yaml:"api"`
	Metrics *metrics.Config `yaml:"metrics"`

	Monitor *capture.MonitorConfig `yaml:"monitor"`
	Watch   *capture.WatchConfig   `yaml:"watch"`
}

func (c Config) String() string {
	m, err := yaml.MarshalWithOptions(c, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return "marshalling error..."
	}
	return string(m)
}

func (c *Config) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config Config

	def := &config{
		ByteOrder: "native",
		Family:    "route",
		Verbosity: "structs",
	}

	if err := yaml.Unmarshal(b, def); err != nil {
		return err
	}

	*c = Config(*def)

	return c.validate()
}

func (c *Config) validate() error {
	if _, err := netlink.ParseByteOrder(c.ByteOrder); err != nil {
		return err
	}
	if _, ok := netlink.ParseFamily(c.Family); !ok {
		return fmt.Errorf("unknown netlink family %q", c.Family)
	}
	switch c.Verbosity {
	case "structs", "lean":
	default:
		return fmt.Errorf("unknown verbosity %q", c.Verbosity)
	}
	return nil
}

// Order returns the configured byte order. It can't fail on a validated
// configuration.
func (c *Config) Order() binary.ByteOrder {
	o, err := netlink.ParseByteOrder(c.ByteOrder)
	if err != nil {
		return netlink.NativeEndian
	}
	return o
}

// NetlinkFamily returns the configured family. It can't fail on a
// validated configuration.
func (c *Config) NetlinkFamily() netlink.Family {
	f, _ := netlink.ParseFamily(c.Family)
	return f
}

func ReadConf(path string) (*Config, error) {
	r, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading the configuration file: %w", err)
	}

	conf := Config{}
	if err := yaml.Unmarshal(r, &conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling the configuration: %w", err)
	}

	return &conf, nil
}

// DefaultConf is the configuration in effect when there's no file to read.
func DefaultConf() (*Config, error) {
	conf := Config{}
	if err := yaml.Unmarshal([]byte("{}"), &conf); err != nil {
		return nil, fmt.Errorf("error unmarshaling the default configuration: %w", err)
	}
	return &conf, nil
}
