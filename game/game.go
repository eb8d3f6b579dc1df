// Package game ties the particle field, ripples and sparks into one tick loop and
// exposes the event entry points front ends call.
package game

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pthm-cable/lumen/audio"
	"github.com/pthm-cable/lumen/config"
	"github.com/pthm-cable/lumen/palette"
	"github.com/pthm-cable/lumen/systems"
	"github.com/pthm-cable/lumen/telemetry"
)

// EnergySource is an external audio energy feed.
type EnergySource interface {
	Level(dt float64) audio.Energy
}

// Options configures a Game.
type Options struct {
	Config         *config.Config // nil = config.Cfg()
	Seed           int64          // 0 = time-based
	LogStats       bool
	StatsWindowSec float64 // 0 = config value
	OutputDir      string
	Audio          EnergySource
	StatsCallback  func(telemetry.WindowStats)
}

// Game holds the complete simulation state. It is not safe for concurrent use;
// front ends call events and Step from one goroutine.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	field    *systems.ParticleField
	ripples  *systems.RippleSet
	sparks   *systems.SparkEmitter
	palettes *palette.Set
	bounds   systems.Bounds

	settings Settings
	pointer  pointer

	audio             EnergySource
	energy            audio.Energy
	audioCooldown     float64
	lastPaletteSwitch float64

	tick    int32
	simTime float64
	paused  bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
}

// NewGameWithOptions creates a game sized to the configured screen.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	palettes, err := palette.FromConfig(cfg.Palettes)
	if err != nil {
		return nil, fmt.Errorf("loading palettes: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	statsWindow := cfg.Telemetry.StatsWindow
	if opts.StatsWindowSec > 0 {
		statsWindow = opts.StatsWindowSec
	}

	bounds := systems.NewBounds(cfg.Derived.ScreenW, cfg.Derived.ScreenH)
	set := palette.NewSet(palettes)

	g := &Game{
		cfg:           cfg,
		rng:           rng,
		bounds:        bounds,
		palettes:      set,
		field:         systems.NewParticleField(fieldParams(cfg), bounds, set.Current().Len(), rng),
		ripples:       systems.NewRippleSet(rippleParams(cfg)),
		sparks:        systems.NewSparkEmitter(sparkParams(cfg), set.Current().Len(), rng),
		audio:         opts.Audio,
		collector:     telemetry.NewCollector(statsWindow, cfg.Physics.DT),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
	}
	g.pointer.reset(bounds.Center())

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, err
		}
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, err
		}
		g.outputManager = om
	}

	g.Configure(DefaultSettings(cfg))
	return g, nil
}

// Unload flushes and closes run output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		logError("closing output", err)
	}
	g.outputManager = nil
}

// Tick returns the number of completed steps.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulated time in seconds.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Paused reports whether stepping is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes stepping.
func (g *Game) SetPaused(p bool) {
	g.paused = p
}

// Settings returns the current settings.
func (g *Game) Settings() Settings {
	return g.settings
}

// Palettes returns the palette set.
func (g *Game) Palettes() *palette.Set {
	return g.palettes
}

// Bounds returns the current simulation bounds.
func (g *Game) Bounds() systems.Bounds {
	return g.bounds
}

// Energy returns the last audio reading.
func (g *Game) Energy() audio.Energy {
	return g.energy
}

// PerfStats returns the step timing over the perf window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// RecordFrame marks a presented frame for FPS reporting.
func (g *Game) RecordFrame() {
	g.perfCollector.RecordFrame()
}

// Counts returns the current collection sizes.
func (g *Game) Counts() telemetry.Population {
	return telemetry.Population{
		Particles: g.field.Len(),
		Ripples:   g.ripples.Len(),
		Sparks:    g.sparks.Len(),
	}
}
