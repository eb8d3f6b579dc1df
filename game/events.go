package game

import (
	"log/slog"

	"github.com/pthm-cable/lumen/systems"
	"github.com/pthm-cable/lumen/telemetry"
)

// OnPointerMove activates the attractor at (x, y).
// Non-finite coordinates deactivate it.
func (g *Game) OnPointerMove(x, y float64) {
	g.pointer.move(x, y)
}

// OnPointerLeave deactivates the attractor.
func (g *Game) OnPointerLeave() {
	g.pointer.leave()
}

// OnTrigger spawns a ripple at (x, y), plus a spark burst when sparks are enabled.
func (g *Game) OnTrigger(x, y float64) {
	g.spawnRipple(x, y, g.cfg.Ripple.TriggerStrength)
	if g.settings.Sparks {
		g.spawnBurst(x, y, g.cfg.Spark.TriggerIntensity)
	}
}

// OnBurst spawns a ripple and a strong spark burst at the field center.
func (g *Game) OnBurst() {
	c := g.field.Center()
	g.spawnRipple(c.X, c.Y, g.cfg.Ripple.TriggerStrength)
	g.spawnBurst(c.X, c.Y, g.cfg.Spark.SpaceIntensity)
}

// OnIgnite fires a strong ripple and burst at the last pointer position, kicks every
// particle outward and refreshes their colors.
func (g *Game) OnIgnite() {
	p := g.pointer.last
	g.spawnRipple(p.X, p.Y, g.cfg.Ripple.IgniteStrength)
	g.spawnBurst(p.X, p.Y, g.cfg.Spark.IgniteIntensity)
	g.field.Kick(1)
	g.field.Recolor(g.palettes.Current().Len(), g.cfg.Field.RecolorChance)
	g.collector.Record(telemetry.NewIgniteEvent(g.tick))
}

// OnPaletteChange selects palette index (wrapping) and reassigns particle colors.
// Positions are not touched.
func (g *Game) OnPaletteChange(index int) {
	p := g.palettes.Select(index)
	g.applyPalette()
	slog.Debug("palette changed", "palette", p.Name, "index", g.palettes.Index())
}

// OnNextPalette selects the following palette.
func (g *Game) OnNextPalette() {
	g.OnPaletteChange(g.palettes.Index() + 1)
}

func (g *Game) applyPalette() {
	n := g.palettes.Current().Len()
	g.field.Recolor(n, g.cfg.Field.RecolorChance)
	g.sparks.SetPaletteSize(n)
	g.lastPaletteSwitch = g.simTime
	g.collector.Record(telemetry.NewPaletteChangeEvent(g.tick))
}

// OnResize changes the simulation bounds. Particles keep their positions; ones
// outside the new bounds are reset on the next step.
func (g *Game) OnResize(w, h float64) {
	b := systems.NewBounds(w, h)
	if b.Width == 0 || b.Height == 0 || b == g.bounds {
		return
	}
	g.bounds = b
	g.field.SetBounds(b)
	g.ripples.SetBounds(b)
	g.pointer.rehome(b.Center())
	g.field.SetCenter(g.pointer.center)
	slog.Debug("resized", "width", w, "height", h)
}

// TogglePause flips the paused state.
func (g *Game) TogglePause() {
	g.paused = !g.paused
}

func (g *Game) spawnRipple(x, y, strength float64) {
	before := g.ripples.Len()
	g.ripples.Spawn(x, y, strength)
	if g.ripples.Len() > before {
		g.collector.Record(telemetry.NewRippleSpawnEvent(g.tick))
	}
}

func (g *Game) spawnBurst(x, y, intensity float64) {
	if n := g.sparks.SpawnBurst(x, y, intensity); n > 0 {
		g.collector.Record(telemetry.NewSparkBurstEvent(g.tick, n))
	}
}
