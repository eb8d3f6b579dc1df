package systems

import "gonum.org/v1/gonum/spatial/r2"

// Attractor is an optional point that pulls particles toward it.
// The zero value is inactive.
type Attractor struct {
	Pos    r2.Vec
	Active bool
}

// NoAttractor is the inactive attractor.
var NoAttractor = Attractor{}

// AttractorAt returns an active attractor at (x, y).
// Non-finite coordinates yield an inactive attractor.
func AttractorAt(x, y float64) Attractor {
	a := Attractor{Pos: r2.Vec{X: x, Y: y}, Active: true}
	if !a.Valid() {
		return NoAttractor
	}
	return a
}

// Valid reports whether the attractor is active and has a finite position.
func (a Attractor) Valid() bool {
	return a.Active && finiteVec(a.Pos)
}

// AttractorParams configures the attractor pull.
type AttractorParams struct {
	Radius      float64 // Influence radius
	Gain        float64 // Pull magnitude numerator
	MinDistance float64 // Denominator floor
}

// Pull returns the acceleration the attractor applies at p.
// The magnitude is flow*gain/max(dist, MinDistance) inside Radius and zero elsewhere.
func (a Attractor) Pull(p r2.Vec, flow float64, params AttractorParams) r2.Vec {
	if !a.Valid() {
		return r2.Vec{}
	}
	unit, dist, ok := direction(p, a.Pos)
	if !ok || dist > params.Radius {
		return r2.Vec{}
	}
	mag := flow * params.Gain / max(dist, params.MinDistance, minDistance)
	return r2.Scale(mag, unit)
}
