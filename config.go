package main

import (
	"bytes"
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed assets/dashboard.yaml
var defaultConfigYAML []byte

type IconConfig struct {
	URL         string `json:"url" yaml:"url"`
	Size        [2]int `json:"size" yaml:"size"`
	Anchor      [2]int `json:"anchor" yaml:"anchor"`
	PopupAnchor [2]int `json:"popupAnchor" yaml:"popupAnchor"`
}

type MapConfig struct {
	Center      Position   `json:"center" yaml:"center"`
	Zoom        int        `json:"zoom" yaml:"zoom"`
	TileURL     string     `json:"tileUrl" yaml:"tileUrl"`
	Attribution string     `json:"attribution" yaml:"attribution"`
	Icon        IconConfig `json:"icon" yaml:"icon"`
}

// StatsConfig pins the statistics panel to fixed figures when Mockup is set.
type StatsConfig struct {
	Mockup          bool `yaml:"mockup"`
	ActiveVehicles  int  `yaml:"activeVehicles"`
	TotalPassengers int  `yaml:"totalPassengers"`
}

type Config struct {
	Map      MapConfig   `yaml:"map"`
	Stats    StatsConfig `yaml:"stats"`
	Vehicles []Vehicle   `yaml:"vehicles"`
}

// DefaultConfig returns the embedded dashboard configuration.
func DefaultConfig() (*Config, error) {
	cfg := &Config{}
	if err := decodeConfig(defaultConfigYAML, cfg); err != nil {
		return nil, errors.Wrap(err, "embedded config")
	}
	return cfg, nil
}

// ParseConfig overlays b on top of the embedded defaults. A vehicles list in b
// replaces the default fleet entirely.
func ParseConfig(b []byte) (*Config, error) {
	cfg, err := DefaultConfig()
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return cfg, nil
	}
	if err := decodeConfig(b, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig reads a config file, or returns the defaults when path is empty.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config %s", path)
	}
	cfg, err := ParseConfig(b)
	if err != nil {
		return nil, errors.Wrapf(err, "could not parse config %s", path)
	}
	return cfg, nil
}

func decodeConfig(b []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	return dec.Decode(cfg)
}
