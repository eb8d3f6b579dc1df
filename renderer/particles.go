package renderer

import (
	"iter"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lumen/palette"
	"github.com/pthm-cable/lumen/systems"
)

// ParticleRenderer draws field particles as soft dots.
type ParticleRenderer struct {
	MinSize  float32
	GlowSize float32 // Halo radius as a multiple of the particle size
}

// NewParticleRenderer creates a new particle renderer.
func NewParticleRenderer() *ParticleRenderer {
	return &ParticleRenderer{MinSize: 0.5, GlowSize: 3}
}

// Draw renders every particle. With pulse off the base size is used; with glow on
// each particle also gets a faint halo tinted toward white.
func (r *ParticleRenderer) Draw(particles iter.Seq[systems.ParticleState], pal palette.Palette, glow, pulse bool) {
	for p := range particles {
		size := p.BaseSize
		if pulse {
			size = p.Size
		}
		radius := max(float32(size), r.MinSize)
		pos := rl.Vector2{X: float32(p.Pos.X), Y: float32(p.Pos.Y)}

		if glow {
			rl.DrawCircleV(pos, radius*r.GlowSize, toRL(pal.Glow(p.ColorIndex, 0.35), 0.12))
		}
		rl.DrawCircleV(pos, radius, paletteColor(pal, p.ColorIndex, 0.9))
	}
}
