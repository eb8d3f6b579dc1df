package game

import (
	"github.com/pthm-cable/lumen/telemetry"
)

// audioJitter is the half-width of the square around the center where audio ripples
// land while the pointer is away.
const audioJitter = 70.0

// updateAudio reads the energy feed and reacts to it: loud frames spawn a ripple
// (rate-limited by ripple_interval) and sometimes a burst, and sustained energy cycles
// the palette when auto palette is on.
func (g *Game) updateAudio(dt float64) {
	if g.audio == nil {
		return
	}
	ac := &g.cfg.Audio
	g.energy = g.audio.Level(dt)
	g.audioCooldown = max(g.audioCooldown-dt, 0)

	level := g.energy.Average
	if level > ac.RippleThreshold && g.audioCooldown == 0 {
		x, y := g.audioOrigin()
		g.spawnRipple(x, y, 1+level/255)
		g.collector.Record(telemetry.NewAudioTriggerEvent(g.tick))
		if g.settings.Sparks && g.rng.Float64() < ac.SparkChance {
			g.spawnBurst(x, y, level/128)
		}
		g.audioCooldown = ac.RippleInterval
	}

	if g.settings.AutoPalette && level > ac.AutoPaletteEnergy &&
		g.simTime-g.lastPaletteSwitch > ac.AutoPaletteInterval {
		g.OnNextPalette()
	}
}

// audioOrigin returns the pointer when active, otherwise a point near the center.
func (g *Game) audioOrigin() (x, y float64) {
	if g.pointer.active {
		return g.pointer.last.X, g.pointer.last.Y
	}
	c := g.bounds.Center()
	return c.X + (g.rng.Float64()-0.5)*2*audioJitter, c.Y + (g.rng.Float64()-0.5)*2*audioJitter
}
