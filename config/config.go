// Package config provides configuration loading and access for the field.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Field     FieldConfig     `yaml:"field"`
	Attractor AttractorConfig `yaml:"attractor"`
	Ripple    RippleConfig    `yaml:"ripple"`
	Spark     SparkConfig     `yaml:"spark"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Audio     AudioConfig     `yaml:"audio"`
	Render    RenderConfig    `yaml:"render"`
	Palettes  []PaletteConfig `yaml:"palettes"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds tick timing.
type PhysicsConfig struct {
	DT    float64 `yaml:"dt"`     // Fixed step used by headless runs
	MaxDT float64 `yaml:"max_dt"` // Longer frames are clamped to this
}

// FieldConfig holds particle field parameters.
type FieldConfig struct {
	Count         int     `yaml:"count"`
	Flow          float64 `yaml:"flow"`           // Attractor pull multiplier
	Warp          float64 `yaml:"warp"`           // Flow angle / orbit wobble multiplier
	Damping       float64 `yaml:"damping"`        // Velocity factor per 1/60 s
	Stiffness     float64 `yaml:"stiffness"`      // Pull toward the orbit target (1/s^2)
	Margin        float64 `yaml:"margin"`         // Distance outside bounds before reset
	OrbitMin      float64 `yaml:"orbit_min"`      // Smallest orbit radius in px
	OrbitSpread   float64 `yaml:"orbit_spread"`   // Orbit spread as a fraction of min(w, h)
	SpeedMin      float64 `yaml:"speed_min"`      // Angular speed in rad/s
	SpeedSpread   float64 `yaml:"speed_spread"`
	AmpMin        float64 `yaml:"amp_min"`        // Orbit wobble amplitude in px
	AmpSpread     float64 `yaml:"amp_spread"`
	SizeMin       float64 `yaml:"size_min"`
	SizeSpread    float64 `yaml:"size_spread"`
	PulseAmount   float64 `yaml:"pulse_amount"`   // Relative size oscillation
	PulseSpeed    float64 `yaml:"pulse_speed"`    // rad/s
	SparkChance   float64 `yaml:"spark_chance"`   // Trail spark probability per particle per 1/60 s
	RecolorChance float64 `yaml:"recolor_chance"` // Share of particles recolored on palette change
	KickMax       float64 `yaml:"kick_max"`       // Max outward speed added by ignite, px/s
}

// AttractorConfig holds pointer pull parameters.
type AttractorConfig struct {
	Radius      float64 `yaml:"radius"`       // Influence radius
	Gain        float64 `yaml:"gain"`         // Pull = flow * gain / max(dist, min_distance)
	MinDistance float64 `yaml:"min_distance"` // Singularity guard
}

// RippleConfig holds ripple parameters.
type RippleConfig struct {
	Growth          float64 `yaml:"growth"`           // Radius growth in px/s at strength 1
	Decay           float64 `yaml:"decay"`            // Intensity factor per 1/60 s
	Epsilon         float64 `yaml:"epsilon"`          // Intensity below which a ripple expires
	MaxRadius       float64 `yaml:"max_radius"`       // 0 = max(width, height)
	FrontMargin     float64 `yaml:"front_margin"`     // Half-width of the force band around the front
	Push            float64 `yaml:"push"`             // Force scale, px/s^2
	MaxStrength     float64 `yaml:"max_strength"`
	TriggerStrength float64 `yaml:"trigger_strength"` // Strength for click/space triggers
	IgniteStrength  float64 `yaml:"ignite_strength"`
}

// SparkConfig holds spark parameters.
type SparkConfig struct {
	BaseCount        float64 `yaml:"base_count"`   // Sparks per unit intensity
	CountSpread      float64 `yaml:"count_spread"` // Random extra sparks per unit intensity
	SpeedMin         float64 `yaml:"speed_min"`
	SpeedSpread      float64 `yaml:"speed_spread"`
	SizeMin          float64 `yaml:"size_min"`
	SizeSpread       float64 `yaml:"size_spread"`
	Alpha            float64 `yaml:"alpha"`
	Drag             float64 `yaml:"drag"` // Velocity factor per 1/60 s
	Fade             float64 `yaml:"fade"` // Alpha factor per 1/60 s
	Epsilon          float64 `yaml:"epsilon"`
	MaxIntensity     float64 `yaml:"max_intensity"`
	MaxSparks        int     `yaml:"max_sparks"`
	TrailAlpha       float64 `yaml:"trail_alpha"`
	TrailSpeed       float64 `yaml:"trail_speed"`
	TrailSizeMin     float64 `yaml:"trail_size_min"`
	TrailSizeSpread  float64 `yaml:"trail_size_spread"`
	TriggerIntensity float64 `yaml:"trigger_intensity"`
	SpaceIntensity   float64 `yaml:"space_intensity"`
	IgniteIntensity  float64 `yaml:"ignite_intensity"`
}

// PointerConfig holds attractor smoothing parameters.
type PointerConfig struct {
	Frequency     float64 `yaml:"frequency"`      // Spring angular frequency while the pointer is active
	IdleFrequency float64 `yaml:"idle_frequency"` // Spring frequency while drifting back to center
	Damping       float64 `yaml:"damping"`        // Spring damping ratio
}

// AudioConfig holds energy feed parameters.
type AudioConfig struct {
	FFTSize             int     `yaml:"fft_size"`
	BeatBins            int     `yaml:"beat_bins"`             // Low bins used for beat detection
	RippleThreshold     float64 `yaml:"ripple_threshold"`      // Average level (0..255) that spawns a ripple
	RippleInterval      float64 `yaml:"ripple_interval"`       // Min seconds between audio ripples
	SparkChance         float64 `yaml:"spark_chance"`          // Chance of a burst per audio ripple
	AutoPaletteInterval float64 `yaml:"auto_palette_interval"` // Seconds between automatic palette switches
	AutoPaletteEnergy   float64 `yaml:"auto_palette_energy"`
}

// RenderConfig holds renderer pass-through toggles and initial UI state.
type RenderConfig struct {
	Trail       bool    `yaml:"trail"`
	Glow        bool    `yaml:"glow"`
	Pulse       bool    `yaml:"pulse"`
	Sparks      bool    `yaml:"sparks"`
	AutoPalette bool    `yaml:"auto_palette"`
	TrailFade   float64 `yaml:"trail_fade"` // Background alpha per frame when trails are on
	Background  string  `yaml:"background"`
}

// PaletteConfig is a named list of hex colors.
type PaletteConfig struct {
	Name   string   `yaml:"name"`
	Colors []string `yaml:"colors"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW         float64 // Screen.Width as float64
	ScreenH         float64 // Screen.Height as float64
	MaxRippleRadius float64 // Ripple.MaxRadius or max(w, h)
	TicksPerWindow  int     // Telemetry.StatsWindow / Physics.DT
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
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
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the simulation cannot coerce into something sane.
// Runtime inputs are clamped by the systems themselves; this only guards the file.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Physics.DT <= 0 {
		return fmt.Errorf("physics.dt must be positive, got %v", c.Physics.DT)
	}
	if c.Field.Damping <= 0 || c.Field.Damping >= 1 {
		return fmt.Errorf("field.damping must be in (0, 1), got %v", c.Field.Damping)
	}
	if c.Ripple.Decay <= 0 || c.Ripple.Decay >= 1 {
		return fmt.Errorf("ripple.decay must be in (0, 1), got %v", c.Ripple.Decay)
	}
	if c.Spark.Fade <= 0 || c.Spark.Fade >= 1 {
		return fmt.Errorf("spark.fade must be in (0, 1), got %v", c.Spark.Fade)
	}
	if len(c.Palettes) == 0 {
		return fmt.Errorf("at least one palette is required")
	}
	for i, p := range c.Palettes {
		if len(p.Colors) == 0 {
			return fmt.Errorf("palette %d (%q) has no colors", i, p.Name)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW = float64(c.Screen.Width)
	c.Derived.ScreenH = float64(c.Screen.Height)

	c.Derived.MaxRippleRadius = c.Ripple.MaxRadius
	if c.Derived.MaxRippleRadius <= 0 {
		c.Derived.MaxRippleRadius = math.Max(c.Derived.ScreenW, c.Derived.ScreenH)
	}

	c.Derived.TicksPerWindow = int(c.Telemetry.StatsWindow / c.Physics.DT)
	if c.Derived.TicksPerWindow < 1 {
		c.Derived.TicksPerWindow = 1
	}
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
