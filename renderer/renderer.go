// Package renderer draws game frames with raylib.
package renderer

import (
	"github.com/lucasb-eyer/go-colorful"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lumen/game"
	"github.com/pthm-cable/lumen/palette"
)

// Renderer owns the accumulation target that gives particles their trails.
// Must be created after the raylib window.
type Renderer struct {
	target        rl.RenderTexture2D
	width, height int32

	background rl.Color
	trailFade  float32 // Background alpha painted over the target each frame

	particles *ParticleRenderer
	ripples   *RippleRenderer
	sparks    *SparkRenderer
}

// NewRenderer creates a renderer for a width x height surface. background is a hex
// color; an invalid value falls back to near black.
func NewRenderer(width, height int32, background string, trailFade float64) *Renderer {
	r := &Renderer{
		background: parseBackground(background),
		trailFade:  float32(trailFade),
		particles:  NewParticleRenderer(),
		ripples:    NewRippleRenderer(),
		sparks:     NewSparkRenderer(),
	}
	r.Resize(width, height)
	return r
}

func parseBackground(hex string) rl.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return rl.Color{R: 10, G: 12, B: 24, A: 255}
	}
	cr, cg, cb := c.Clamped().RGB255()
	return rl.Color{R: cr, G: cg, B: cb, A: 255}
}

// Resize recreates the accumulation target. Trails are lost.
func (r *Renderer) Resize(width, height int32) {
	if width <= 0 || height <= 0 || (width == r.width && height == r.height) {
		return
	}
	if r.width > 0 {
		rl.UnloadRenderTexture(r.target)
	}
	r.width, r.height = width, height
	r.target = rl.LoadRenderTexture(width, height)

	rl.BeginTextureMode(r.target)
	rl.ClearBackground(r.background)
	rl.EndTextureMode()
}

// Draw renders a frame to the screen. Call between BeginDrawing and EndDrawing.
func (r *Renderer) Draw(f game.Frame) {
	rl.BeginTextureMode(r.target)
	if f.Trail {
		fade := r.background
		fade.A = uint8(clamp01(r.trailFade) * 255)
		rl.DrawRectangle(0, 0, r.width, r.height, fade)
	} else {
		rl.ClearBackground(r.background)
	}

	rl.BeginBlendMode(rl.BlendAdditive)
	r.ripples.Draw(f.Ripples, f.Palette)
	r.particles.Draw(f.Particles, f.Palette, f.Glow, f.Pulse)
	r.sparks.Draw(f.Sparks, f.Palette)
	rl.EndBlendMode()
	rl.EndTextureMode()

	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: -float32(r.height)}
	dst := rl.Rectangle{X: 0, Y: 0, Width: float32(r.width), Height: float32(r.height)}
	rl.DrawTexturePro(r.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)

	if f.Attractor.Active {
		r.drawAttractor(f)
	}
}

// drawAttractor marks the smoothed attractor center.
func (r *Renderer) drawAttractor(f game.Frame) {
	c := toRL(f.Palette.Glow(0, 0.6), 0.35)
	pos := rl.Vector2{X: float32(f.Attractor.Pos.X), Y: float32(f.Attractor.Pos.Y)}
	rl.DrawCircleLinesV(pos, 10, c)
	rl.DrawCircleV(pos, 2, c)
}

// Unload frees GPU resources.
func (r *Renderer) Unload() {
	if r.width > 0 {
		rl.UnloadRenderTexture(r.target)
		r.width, r.height = 0, 0
	}
}

// toRL converts a palette color with alpha in [0, 1].
func toRL(c colorful.Color, alpha float64) rl.Color {
	cr, cg, cb := c.Clamped().RGB255()
	return rl.Color{R: cr, G: cg, B: cb, A: uint8(clamp01(float32(alpha))*255 + 0.5)}
}

// paletteColor returns palette entry i as a raylib color.
func paletteColor(p palette.Palette, i int, alpha float64) rl.Color {
	cr, cg, cb, ca := p.RGBA(i, alpha)
	return rl.Color{R: cr, G: cg, B: cb, A: ca}
}

func clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
