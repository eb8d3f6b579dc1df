package systems

import (
	"iter"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lumen/components"
)

// FieldParams configures a ParticleField.
type FieldParams struct {
	Damping     float64 // Velocity factor per 1/60 s, in (0, 1)
	Stiffness   float64 // Pull toward the orbit target, 1/s^2
	Margin      float64 // Distance outside bounds before a particle is reset
	OrbitMin    float64
	OrbitSpread float64 // Fraction of the shorter bounds side
	SpeedMin    float64
	SpeedSpread float64
	AmpMin      float64
	AmpSpread   float64
	SizeMin     float64
	SizeSpread  float64
	PulseAmount float64
	PulseSpeed  float64
	SparkChance float64 // Trail spark probability per particle per 1/60 s
	KickMax     float64
	MaxDT       float64
	Attractor   AttractorParams
}

// ParticleState is the read-only draw state of a particle.
type ParticleState struct {
	Pos        r2.Vec
	Vel        r2.Vec
	Size       float64 // Size including the pulse oscillation
	BaseSize   float64
	ColorIndex int
}

// ParticleField maintains N particles and advances their kinematics each tick.
// Particles live in a world owned by the field; nothing outside holds their entities.
type ParticleField struct {
	world    *ecs.World
	mapper   *ecs.Map4[components.Position, components.Velocity, components.Motion, components.Appearance]
	filter   *ecs.Filter4[components.Position, components.Velocity, components.Motion, components.Appearance]
	posMap   *ecs.Map1[components.Position]
	velMap   *ecs.Map1[components.Velocity]
	motMap   *ecs.Map1[components.Motion]
	lookMap  *ecs.Map1[components.Appearance]
	entities []ecs.Entity // creation order, for truncation and snapshots

	params      FieldParams
	bounds      Bounds
	center      r2.Vec
	flow        float64
	warp        float64
	elapsed     float64
	paletteSize int
	rng         *rand.Rand
}

// NewParticleField creates an empty field. Call Configure to populate it.
func NewParticleField(params FieldParams, bounds Bounds, paletteSize int, rng *rand.Rand) *ParticleField {
	world := ecs.NewWorld()
	f := &ParticleField{
		world: world,
		mapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Motion,
			components.Appearance,
		](world),
		filter: ecs.NewFilter4[
			components.Position,
			components.Velocity,
			components.Motion,
			components.Appearance,
		](world),
		posMap:      ecs.NewMap1[components.Position](world),
		velMap:      ecs.NewMap1[components.Velocity](world),
		motMap:      ecs.NewMap1[components.Motion](world),
		lookMap:     ecs.NewMap1[components.Appearance](world),
		params:      params,
		paletteSize: max(paletteSize, 1),
		rng:         rng,
	}
	f.SetBounds(bounds)
	return f
}

// Configure adjusts the particle count and motion strengths.
// A count of zero or less empties the field. Non-finite strengths keep their
// previous value.
func (f *ParticleField) Configure(count int, flowStrength, warpStrength float64) {
	if isFinite(flowStrength) {
		f.flow = flowStrength
	}
	if isFinite(warpStrength) {
		f.warp = warpStrength
	}

	count = max(count, 0)
	for len(f.entities) < count {
		f.spawn()
	}
	if len(f.entities) > count {
		for _, e := range f.entities[count:] {
			f.world.RemoveEntity(e)
		}
		clear(f.entities[count:])
		f.entities = f.entities[:count]
	}
}

// spawn creates one particle on its orbit.
func (f *ParticleField) spawn() {
	p := &f.params
	motion := components.Motion{
		Phase:  f.rng.Float64() * 2 * math.Pi,
		Speed:  p.SpeedMin + f.rng.Float64()*p.SpeedSpread,
		Radius: p.OrbitMin + f.rng.Float64()*p.OrbitSpread*f.bounds.MinSide(),
		Amp:    p.AmpMin + f.rng.Float64()*p.AmpSpread,
	}
	look := components.Appearance{
		Size:       p.SizeMin + f.rng.Float64()*p.SizeSpread,
		ColorIndex: f.rng.Intn(f.paletteSize),
	}
	target := f.target(&motion, f.elapsed)
	pos := components.Position{X: target.X, Y: target.Y}
	if !f.bounds.Within(target, p.Margin) {
		rp := f.bounds.RandomPoint(f.rng)
		pos = components.Position{X: rp.X, Y: rp.Y}
	}
	vel := components.Velocity{}

	e := f.mapper.NewEntity(&pos, &vel, &motion, &look)
	f.entities = append(f.entities, e)
}

// target returns the point on a particle's orbit at time t.
func (f *ParticleField) target(m *components.Motion, t float64) r2.Vec {
	angle := FlowAngle(m.Phase, m.Speed, f.warp, t)
	radius := OrbitRadius(m.Radius, m.Amp, m.Phase, f.warp, t)
	return r2.Add(f.center, r2.Vec{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius})
}

// Advance integrates every particle by dt seconds.
//
// Forces, in order: spring toward the flow-field orbit target, attractor pull, ripple
// push. Velocity is then damped and integrated. Particles found beyond the bounds plus
// margin, before or after integration, are reset to a random point inside.
// ripples and sparks may be nil.
// A zero, negative, or non-finite dt leaves the field untouched.
func (f *ParticleField) Advance(dt float64, attractor Attractor, ripples ForceField, sparks SparkSink) {
	dt = sanitizeDT(dt, f.params.MaxDT)
	if dt == 0 {
		return
	}

	t := f.elapsed + dt
	damping := perTick(f.params.Damping, dt)
	sparkChance := f.params.SparkChance * dt * referenceFPS

	query := f.filter.Query()
	for query.Next() {
		pos, vel, motion, look := query.Get()

		p := r2.Vec{X: pos.X, Y: pos.Y}
		v := r2.Vec{X: vel.X, Y: vel.Y}

		if f.escaped(p, v) {
			// Left outside before this step; relocate without integrating
			p = f.bounds.RandomPoint(f.rng)
			v = r2.Vec{}
		} else {
			// Spring toward the orbit target
			toward := r2.Sub(f.target(motion, t), p)
			accel := r2.Scale(f.params.Stiffness, toward)

			accel = r2.Add(accel, attractor.Pull(p, f.flow, f.params.Attractor))

			if ripples != nil {
				accel = r2.Add(accel, ripples.ForceAt(p))
			}

			v = r2.Add(v, r2.Scale(dt, accel))
			v = r2.Scale(damping, v)
			p = r2.Add(p, r2.Scale(dt, v))

			if f.escaped(p, v) {
				p = f.bounds.RandomPoint(f.rng)
				v = r2.Vec{}
			}
		}

		pos.X, pos.Y = p.X, p.Y
		vel.X, vel.Y = v.X, v.Y

		if sparks != nil && sparkChance > 0 && f.rng.Float64() < sparkChance {
			sparks.Emit(p, look.ColorIndex)
		}
	}

	f.elapsed = t
}

// escaped reports whether a particle state is unusable or outside bounds plus margin.
func (f *ParticleField) escaped(p, v r2.Vec) bool {
	return !finiteVec(p) || !finiteVec(v) || !f.bounds.Within(p, f.params.Margin)
}

// Kick pushes every particle outward from the field center.
// Each particle gets a random share of amount*KickMax px/s.
func (f *ParticleField) Kick(amount float64) {
	if !isFinite(amount) || amount <= 0 {
		return
	}
	query := f.filter.Query()
	for query.Next() {
		pos, vel, _, _ := query.Get()
		unit, _, ok := direction(f.center, r2.Vec{X: pos.X, Y: pos.Y})
		if !ok {
			continue
		}
		speed := f.rng.Float64() * f.params.KickMax * amount
		vel.X += unit.X * speed
		vel.Y += unit.Y * speed
	}
}

// Recolor assigns new palette indices after a palette change. Each particle is
// reassigned with probability chance; indices outside the new palette always are.
// Positions are not touched.
func (f *ParticleField) Recolor(paletteSize int, chance float64) {
	f.paletteSize = max(paletteSize, 1)
	query := f.filter.Query()
	for query.Next() {
		_, _, _, look := query.Get()
		if look.ColorIndex >= f.paletteSize || look.ColorIndex < 0 || f.rng.Float64() < chance {
			look.ColorIndex = f.rng.Intn(f.paletteSize)
		}
	}
}

// Snapshot returns a lazy, restartable sequence of particle draw states in creation
// order. It does not modify the field.
func (f *ParticleField) Snapshot() iter.Seq[ParticleState] {
	return func(yield func(ParticleState) bool) {
		t := f.elapsed
		for _, e := range f.entities {
			pos := f.posMap.Get(e)
			vel := f.velMap.Get(e)
			motion := f.motMap.Get(e)
			look := f.lookMap.Get(e)
			state := ParticleState{
				Pos:        r2.Vec{X: pos.X, Y: pos.Y},
				Vel:        r2.Vec{X: vel.X, Y: vel.Y},
				Size:       look.Size * Pulse(motion.Phase, f.params.PulseAmount, f.params.PulseSpeed, t),
				BaseSize:   look.Size,
				ColorIndex: look.ColorIndex,
			}
			if !yield(state) {
				return
			}
		}
	}
}

// SetBounds changes the field bounds and recenters the orbits. Existing particles keep
// their positions; ones left outside the new bounds are reset on the next Advance.
func (f *ParticleField) SetBounds(b Bounds) {
	f.bounds = b
	f.center = b.Center()
}

// SetCenter moves the orbit center. Non-finite points are ignored.
func (f *ParticleField) SetCenter(c r2.Vec) {
	if finiteVec(c) {
		f.center = c
	}
}

// Center returns the current orbit center.
func (f *ParticleField) Center() r2.Vec {
	return f.center
}

// Bounds returns the current field bounds.
func (f *ParticleField) Bounds() Bounds {
	return f.bounds
}

// Len returns the number of particles.
func (f *ParticleField) Len() int {
	return len(f.entities)
}

// Elapsed returns the simulated time in seconds.
func (f *ParticleField) Elapsed() float64 {
	return f.elapsed
}

// Flow returns the current flow strength.
func (f *ParticleField) Flow() float64 {
	return f.flow
}

// Warp returns the current warp strength.
func (f *ParticleField) Warp() float64 {
	return f.warp
}
