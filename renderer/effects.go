package renderer

import (
	"iter"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lumen/palette"
	"github.com/pthm-cable/lumen/systems"
)

// RippleRenderer draws ripple fronts as thin rings.
type RippleRenderer struct {
	Width    float32
	Segments int32
}

// NewRippleRenderer creates a new ripple renderer.
func NewRippleRenderer() *RippleRenderer {
	return &RippleRenderer{Width: 2, Segments: 96}
}

// Draw renders every ripple with alpha following its intensity.
func (r *RippleRenderer) Draw(ripples iter.Seq[systems.RippleState], pal palette.Palette) {
	for rp := range ripples {
		if rp.Radius <= 0 {
			continue
		}
		center := rl.Vector2{X: float32(rp.Origin.X), Y: float32(rp.Origin.Y)}
		outer := float32(rp.Radius)
		inner := max(outer-r.Width, 0)
		c := toRL(pal.Glow(0, 0.5), rp.Intensity*0.6)
		rl.DrawRing(center, inner, outer, 0, 360, r.Segments, c)
	}
}

// SparkRenderer draws sparks as small fading dots.
type SparkRenderer struct{}

// NewSparkRenderer creates a new spark renderer.
func NewSparkRenderer() *SparkRenderer {
	return &SparkRenderer{}
}

// Draw renders every spark.
func (r *SparkRenderer) Draw(sparks iter.Seq[systems.SparkState], pal palette.Palette) {
	for s := range sparks {
		size := max(float32(s.Size), 0.5)
		rl.DrawCircleV(
			rl.Vector2{X: float32(s.Pos.X), Y: float32(s.Pos.Y)},
			size,
			toRL(pal.Glow(s.ColorIndex, 0.2), s.Alpha),
		)
	}
}
