package game

import (
	"github.com/charmbracelet/harmonica"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/lumen/systems"
)

// pointer tracks the raw pointer and the spring-smoothed orbit center that chases it.
// While the pointer is away the center drifts back to the middle of the field at the
// slower idle frequency.
type pointer struct {
	active bool
	last   r2.Vec // last known pointer position, kept after leave

	center r2.Vec
	vel    r2.Vec
}

func (p *pointer) reset(c r2.Vec) {
	p.active = false
	p.last = c
	p.center = c
	p.vel = r2.Vec{}
}

// rehome moves an idle center to a new home. An active pointer keeps its position
// and the center keeps chasing it.
func (p *pointer) rehome(c r2.Vec) {
	if p.active {
		return
	}
	p.last = c
	p.center = c
	p.vel = r2.Vec{}
}

func (p *pointer) move(x, y float64) {
	if !isFinite(x) || !isFinite(y) {
		p.active = false
		return
	}
	p.active = true
	p.last = r2.Vec{X: x, Y: y}
}

func (p *pointer) leave() {
	p.active = false
}

// attractor returns the pull point for this tick.
func (p *pointer) attractor() systems.Attractor {
	if !p.active {
		return systems.NoAttractor
	}
	return systems.AttractorAt(p.last.X, p.last.Y)
}

// follow advances the smoothed center by dt toward the pointer, or toward home when
// the pointer is inactive.
func (p *pointer) follow(dt float64, home r2.Vec, freq, idleFreq, damping float64) {
	target, f := home, idleFreq
	if p.active {
		target, f = p.last, freq
	}
	if !(dt > 0) || f <= 0 {
		return
	}

	spring := harmonica.NewSpring(dt, f, damping)
	p.center.X, p.vel.X = spring.Update(p.center.X, p.vel.X, target.X)
	p.center.Y, p.vel.Y = spring.Update(p.center.Y, p.vel.Y, target.Y)
}
