package game

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lumen/palette"
	"github.com/pthm-cable/lumen/systems"
)

// Frame is the per-frame output handed to renderers. The sequences are read-only
// views of live state and are valid until the next Step or event call.
type Frame struct {
	Particles iter.Seq[systems.ParticleState]
	Ripples   iter.Seq[systems.RippleState]
	Sparks    iter.Seq[systems.SparkState]

	Palette      palette.Palette
	PaletteIndex int
	Center       r2.Vec
	Attractor    systems.Attractor

	// Render hints
	Trail bool
	Glow  bool
	Pulse bool

	Bounds systems.Bounds
	Tick   int32
	Paused bool
}

// Frame returns the drawable state of the current tick.
func (g *Game) Frame() Frame {
	return Frame{
		Particles:    g.field.Snapshot(),
		Ripples:      g.ripples.Ripples(),
		Sparks:       g.sparks.Sparks(),
		Palette:      g.palettes.Current(),
		PaletteIndex: g.palettes.Index(),
		Center:       g.field.Center(),
		Attractor:    g.pointer.attractor(),
		Trail:        g.settings.Trail,
		Glow:         g.settings.Glow,
		Pulse:        g.settings.Pulse,
		Bounds:       g.bounds,
		Tick:         g.tick,
		Paused:       g.paused,
	}
}
