package capture

import (
	"github.com/goccy/go-yaml"
)

type MonitorConfig struct {
	Family     string   `yaml:"family"`
	Groups     []string `yaml:"groups"`
	BufferSize int      `yaml:"bufferSize"`
}

var DefaultMonitorConfig = MonitorConfig{
	Family:     "route",
	Groups:     []string{"link", "neigh", "ipv4-ifaddr", "ipv6-ifaddr", "ipv4-route", "ipv6-route"},
	BufferSize: 10,
}

func (c *MonitorConfig) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config MonitorConfig

	def := config(DefaultMonitorConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = MonitorConfig(def)

	return nil
}

type WatchConfig struct {
	Directory string   `yaml:"directory"`
	MaxEvents int      `yaml:"maxEvents"`
	Suffixes  []string `yaml:"suffixes"`
}

var DefaultWatchConfig = WatchConfig{
	Directory: "/var/cache/nlmsg-go",
	MaxEvents: 5,
	Suffixes:  []string{".bin", ".hex"},
}

func (c *WatchConfig) UnmarshalYAML(b []byte) error {
	// Needed to break recursive calls into UnmarshalYAML
	type config WatchConfig

	def := config(DefaultWatchConfig)

	if err := yaml.Unmarshal(b, &def); err != nil {
		return err
	}

	*c = WatchConfig(def)

	return nil
}
