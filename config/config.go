// Package config holds the host supplied limits and names an octagonal
// part body works within.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Range is a closed interval with slider increments.
type Range struct {
	Min       float64 `yaml:"min"`
	Max       float64 `yaml:"max"`
	SmallStep float64 `yaml:"small_step,omitempty"`
	LargeStep float64 `yaml:"large_step,omitempty"`
}

// Clamp returns x limited to [r.Min, r.Max].
func (r Range) Clamp(x float64) float64 {
	return math.Min(r.Max, math.Max(x, r.Min))
}

// Fixed reports whether the range admits a single value. Fixed parameters
// are not editable.
func (r Range) Fixed() bool { return r.Min == r.Max }

// Bounded reports whether the range constrains anything. The zero Range
// is unbounded.
func (r Range) Bounded() bool { return r.Max > 0 }

func (r Range) validate() error {
	switch {
	case math.IsNaN(r.Min) || math.IsNaN(r.Max):
		return errors.New("NaN bound")
	case r.Min < 0:
		return fmt.Errorf("negative minimum %g", r.Min)
	case r.Max < r.Min:
		return fmt.Errorf("maximum %g less than minimum %g", r.Max, r.Min)
	case r.SmallStep < 0 || r.LargeStep < 0:
		return errors.New("negative slider step")
	}
	return nil
}

// Config describes the limits and host identifiers of an octagonal part.
type Config struct {
	Diameter Range `yaml:"diameter"`
	Length   Range `yaml:"length"`
	// Volume limits are only enforced while editing. A zero Max disables them.
	Volume Range `yaml:"volume"`

	InitialDiameter float64 `yaml:"initial_diameter"`
	InitialLength   float64 `yaml:"initial_length"`

	TopNode    string `yaml:"top_node"`
	BottomNode string `yaml:"bottom_node"`

	SidesMaterial string `yaml:"sides_material"`
	EndsMaterial  string `yaml:"ends_material"`

	// SliderPrecision is the granularity parameters are truncated to when
	// solved from a volume limit.
	SliderPrecision float64 `yaml:"slider_precision"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Diameter:        Range{Min: 0.01, Max: 10, SmallStep: 0.125, LargeStep: 1.25},
		Length:          Range{Min: 0.01, Max: 10, SmallStep: 0.125, LargeStep: 1.0},
		InitialDiameter: 1,
		InitialLength:   1,
		TopNode:         "top",
		BottomNode:      "bottom",
		SidesMaterial:   "sides",
		EndsMaterial:    "ends",
		SliderPrecision: 0.001,
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the YAML configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Validate checks the configuration is usable and fills unset names with defaults.
func (c *Config) Validate() error {
	if err := c.Diameter.validate(); err != nil {
		return fmt.Errorf("diameter: %w", err)
	}
	if err := c.Length.validate(); err != nil {
		return fmt.Errorf("length: %w", err)
	}
	if err := c.Volume.validate(); err != nil {
		return fmt.Errorf("volume: %w", err)
	}
	if c.Diameter.Max <= 0 || c.Length.Max <= 0 {
		return errors.New("diameter and length maximum must be positive")
	}
	if c.InitialDiameter <= 0 || c.InitialLength <= 0 {
		return errors.New("initial diameter and length must be positive")
	}
	if c.SliderPrecision < 0 {
		return fmt.Errorf("slider_precision invalid: %g", c.SliderPrecision)
	}
	def := Default()
	if c.TopNode == "" {
		c.TopNode = def.TopNode
	}
	if c.BottomNode == "" {
		c.BottomNode = def.BottomNode
	}
	if c.SidesMaterial == "" {
		c.SidesMaterial = def.SidesMaterial
	}
	if c.EndsMaterial == "" {
		c.EndsMaterial = def.EndsMaterial
	}
	return nil
}
