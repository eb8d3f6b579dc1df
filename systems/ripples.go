package systems

import (
	"iter"

	"gonum.org/v1/gonum/spatial/r2"
)

// RippleParams configures a RippleSet.
type RippleParams struct {
	Growth      float64 // Radius growth in px/s at strength 1
	Decay       float64 // Intensity factor per 1/60 s, in (0, 1)
	Epsilon     float64 // Intensity below which a ripple expires
	MaxRadius   float64 // Radius above which a ripple expires
	FitBounds   bool    // MaxRadius follows the longer side of the bounds
	FrontMargin float64 // Half-width of the force band around the front
	Push        float64 // Force scale at full intensity, px/s^2
	MaxStrength float64
	MaxDT       float64
}

// Ripple is an expanding, fading impulse source.
type Ripple struct {
	Origin    r2.Vec
	Radius    float64
	Intensity float64
	Strength  float64
}

// RippleState is the read-only draw state of a ripple.
type RippleState struct {
	Origin    r2.Vec
	Radius    float64
	Intensity float64
}

// RippleExpiry counts ripples removed by an Advance call.
type RippleExpiry struct {
	Decayed  int // Intensity fell below epsilon
	Outgrown int // Radius passed the maximum
}

// ForceField is anything that pushes particles around.
type ForceField interface {
	ForceAt(p r2.Vec) r2.Vec
}

// RippleSet owns the active ripples.
type RippleSet struct {
	ripples []Ripple
	params  RippleParams
}

// NewRippleSet creates an empty ripple set.
func NewRippleSet(params RippleParams) *RippleSet {
	return &RippleSet{
		ripples: make([]Ripple, 0, 16),
		params:  params,
	}
}

// SetBounds recomputes the maximum radius for a resized surface when it follows
// the bounds. A fixed MaxRadius is left alone.
func (s *RippleSet) SetBounds(b Bounds) {
	if !s.params.FitBounds {
		return
	}
	if side := b.MaxSide(); side > 0 {
		s.params.MaxRadius = side
	}
}

// Spawn appends a ripple at (x, y) with zero radius and full intensity.
// A non-finite origin is ignored; an invalid strength falls back to 1.
func (s *RippleSet) Spawn(x, y, strength float64) {
	origin := r2.Vec{X: x, Y: y}
	if !finiteVec(origin) {
		return
	}
	if !isFinite(strength) || strength <= 0 {
		strength = 1
	}
	if s.params.MaxStrength > 0 {
		strength = min(strength, s.params.MaxStrength)
	}
	s.ripples = append(s.ripples, Ripple{
		Origin:    origin,
		Intensity: 1,
		Strength:  strength,
	})
}

// Advance grows and fades every ripple, then drops the expired ones.
func (s *RippleSet) Advance(dt float64) RippleExpiry {
	var expiry RippleExpiry
	dt = sanitizeDT(dt, s.params.MaxDT)
	if dt == 0 {
		return expiry
	}

	fade := perTick(s.params.Decay, dt)
	alive := 0
	for i := range s.ripples {
		r := &s.ripples[i]

		r.Radius += s.params.Growth * r.Strength * dt
		r.Intensity *= fade

		if r.Intensity < s.params.Epsilon {
			expiry.Decayed++
			continue
		}
		if r.Radius > s.params.MaxRadius {
			expiry.Outgrown++
			continue
		}

		s.ripples[alive] = s.ripples[i]
		alive++
	}
	clear(s.ripples[alive:])
	s.ripples = s.ripples[:alive]
	return expiry
}

// ForceAt returns the summed push of every ripple whose front is near p.
// Only the band radius-margin < d < radius+margin is affected, so a front that has
// moved past a point no longer pushes it.
func (s *RippleSet) ForceAt(p r2.Vec) r2.Vec {
	var force r2.Vec
	margin := s.params.FrontMargin
	for i := range s.ripples {
		r := &s.ripples[i]
		unit, d, ok := direction(r.Origin, p)
		if !ok {
			continue
		}
		if d >= r.Radius+margin || r.Radius-d >= margin {
			continue
		}
		falloff := 1 - d/(r.Radius+margin)
		mag := s.params.Push * r.Strength * r.Intensity * falloff
		force = r2.Add(force, r2.Scale(mag, unit))
	}
	return force
}

// Ripples returns a restartable sequence over the active ripples.
func (s *RippleSet) Ripples() iter.Seq[RippleState] {
	return func(yield func(RippleState) bool) {
		for i := range s.ripples {
			r := &s.ripples[i]
			if !yield(RippleState{Origin: r.Origin, Radius: r.Radius, Intensity: r.Intensity}) {
				return
			}
		}
	}
}

// Len returns the number of active ripples.
func (s *RippleSet) Len() int {
	return len(s.ripples)
}

// Clear removes every ripple.
func (s *RippleSet) Clear() {
	clear(s.ripples)
	s.ripples = s.ripples[:0]
}
