package game

import (
	"math"

	"github.com/pthm-cable/lumen/systems"
	"github.com/pthm-cable/lumen/telemetry"
)

// Update advances one frame of wall-clock length dt unless paused.
func (g *Game) Update(dt float64) {
	if g.paused {
		return
	}
	g.Step(dt)
}

// UpdateHeadless advances one fixed step of physics.dt.
func (g *Game) UpdateHeadless() {
	g.Step(g.cfg.Physics.DT)
}

// Step advances the simulation by dt seconds: ripples first, then particles (which
// read the ripple force and emit trail sparks), then sparks. Zero, negative and
// non-finite dt leave every collection untouched.
func (g *Game) Step(dt float64) {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return
	}
	dt = min(dt, g.cfg.Physics.MaxDT)

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.pointer.follow(dt, g.bounds.Center(), g.cfg.Pointer.Frequency, g.cfg.Pointer.IdleFrequency, g.cfg.Pointer.Damping)
	g.field.SetCenter(g.pointer.center)
	g.updateAudio(dt)

	g.perfCollector.StartPhase(telemetry.PhaseRipples)
	expiry := g.ripples.Advance(dt)

	g.perfCollector.StartPhase(telemetry.PhaseParticles)
	var sink systems.SparkSink
	if g.settings.Sparks {
		sink = g.sparks
	}
	g.field.Advance(dt, g.pointer.attractor(), g.ripples, sink)

	g.perfCollector.StartPhase(telemetry.PhaseSparks)
	g.sparks.Advance(dt)

	g.tick++
	g.simTime += dt

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	for _, e := range telemetry.NewRippleExpiryEvents(g.tick, expiry.Decayed, expiry.Outgrown) {
		g.collector.Record(e)
	}
	g.flushTelemetry()

	g.perfCollector.EndTick(g.Counts())
}
