// Package systems contains the particle field, ripple and spark simulations.
package systems

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Bounds represents the simulation bounds. The origin is the top-left corner.
type Bounds struct {
	Width, Height float64
}

// NewBounds returns bounds with negative or non-finite sizes coerced to zero.
func NewBounds(w, h float64) Bounds {
	if !isFinite(w) || w < 0 {
		w = 0
	}
	if !isFinite(h) || h < 0 {
		h = 0
	}
	return Bounds{Width: w, Height: h}
}

// Center returns the middle of the bounds.
func (b Bounds) Center() r2.Vec {
	return r2.Vec{X: b.Width / 2, Y: b.Height / 2}
}

// MinSide returns the shorter of width and height.
func (b Bounds) MinSide() float64 {
	return min(b.Width, b.Height)
}

// MaxSide returns the longer of width and height.
func (b Bounds) MaxSide() float64 {
	return max(b.Width, b.Height)
}

// Within reports whether p lies inside the bounds grown by margin on every side.
func (b Bounds) Within(p r2.Vec, margin float64) bool {
	return p.X >= -margin && p.X <= b.Width+margin &&
		p.Y >= -margin && p.Y <= b.Height+margin
}

// RandomPoint returns a uniformly random point inside the bounds.
func (b Bounds) RandomPoint(rng *rand.Rand) r2.Vec {
	return r2.Vec{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height}
}
