// Package config provides configuration loading and access for the trail.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen" toml:"screen"`
	Chain     ChainConfig     `yaml:"chain" toml:"chain"`
	Wander    WanderConfig    `yaml:"wander" toml:"wander"`
	Render    RenderConfig    `yaml:"render" toml:"render"`
	Panel     PanelConfig     `yaml:"panel" toml:"panel"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// ScreenConfig holds window settings. The canvas starts at this size.
type ScreenConfig struct {
	Width     int    `yaml:"width" toml:"width"`
	Height    int    `yaml:"height" toml:"height"`
	TargetFPS int    `yaml:"target_fps" toml:"target_fps"`
	Title     string `yaml:"title" toml:"title"`
	Resizable bool   `yaml:"resizable" toml:"resizable"`
}

// ChainConfig holds particle chain parameters.
type ChainConfig struct {
	ParticleSize float64 `yaml:"particle_size" toml:"particle_size"` // Silhouette base width
	FollowSpeed  float64 `yaml:"follow_speed" toml:"follow_speed"`   // Fraction of distance closed per step
	SegmentCount int     `yaml:"segment_count" toml:"segment_count"` // Trailing particles besides the lead
	TickDivisor  float64 `yaml:"tick_divisor" toml:"tick_divisor"`   // Elapsed ms per simulation step
	IdleWander   bool    `yaml:"idle_wander" toml:"idle_wander"`     // Orbit the centre until the pointer moves
}

// WanderConfig holds idle orbit parameters.
type WanderConfig struct {
	Radius          float64 `yaml:"radius" toml:"radius"`
	SpeedMin        float64 `yaml:"speed_min" toml:"speed_min"` // Radians per frame
	SpeedMax        float64 `yaml:"speed_max" toml:"speed_max"`
	IndependentAxes bool    `yaml:"independent_axes" toml:"independent_axes"`
}

// RenderConfig holds colours as hex strings.
type RenderConfig struct {
	FillColor  string `yaml:"fill_color" toml:"fill_color"`
	Background string `yaml:"background" toml:"background"`
}

// PanelConfig holds tuning panel settings.
type PanelConfig struct {
	Visible bool `yaml:"visible" toml:"visible"`
	Width   int  `yaml:"width" toml:"width"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window" toml:"stats_window"` // Seconds of simulated time per stats window
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Fill       color.RGBA
	Background color.RGBA
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML or TOML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Decoding into the same struct only overwrites fields present in the file
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if _, err := toml.Decode(string(data), cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges that would break the chain invariants.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Chain.SegmentCount < 0 {
		errs = append(errs, fmt.Errorf("chain.segment_count must be >= 0, got %d", c.Chain.SegmentCount))
	}
	if c.Chain.FollowSpeed < 0 {
		errs = append(errs, fmt.Errorf("chain.follow_speed must be >= 0, got %g", c.Chain.FollowSpeed))
	}
	if c.Chain.TickDivisor <= 0 {
		errs = append(errs, fmt.Errorf("chain.tick_divisor must be positive, got %g", c.Chain.TickDivisor))
	}
	if c.Wander.SpeedMax < c.Wander.SpeedMin {
		errs = append(errs, fmt.Errorf("wander.speed_max %g below speed_min %g", c.Wander.SpeedMax, c.Wander.SpeedMin))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	fill, err := parseColor(c.Render.FillColor)
	if err != nil {
		return fmt.Errorf("render.fill_color: %w", err)
	}
	bg, err := parseColor(c.Render.Background)
	if err != nil {
		return fmt.Errorf("render.background: %w", err)
	}
	c.Derived.Fill = fill
	c.Derived.Background = bg
	return nil
}

// parseColor converts a "#rrggbb" string to an opaque RGBA.
func parseColor(hex string) (color.RGBA, error) {
	col, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
