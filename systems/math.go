package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// minDistance is the distance below which a direction is undefined.
const minDistance = 1e-9

// referenceFPS is the frame rate per-tick factors (damping, decay, fade) are tuned for.
const referenceFPS = 60.0

// clampFloat clamps a value between min and max.
func clampFloat(v, minVal, maxVal float64) float64 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// finiteVec reports whether both components of v are finite.
func finiteVec(v r2.Vec) bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// perTick converts a factor tuned for one 1/60 s frame into the factor for dt seconds.
// perTick(f, 0) == 1, so a zero-length step never decays anything.
func perTick(factor, dt float64) float64 {
	return math.Pow(factor, dt*referenceFPS)
}

// sanitizeDT coerces a caller-supplied step into [0, maxDT].
func sanitizeDT(dt, maxDT float64) float64 {
	if !isFinite(dt) || dt <= 0 {
		return 0
	}
	if maxDT > 0 && dt > maxDT {
		return maxDT
	}
	return dt
}

// direction returns the unit vector from `from` to `to` and the distance between them.
// ok is false when the points coincide.
func direction(from, to r2.Vec) (unit r2.Vec, dist float64, ok bool) {
	d := r2.Sub(to, from)
	dist = r2.Norm(d)
	if dist < minDistance {
		return r2.Vec{}, dist, false
	}
	return r2.Scale(1/dist, d), dist, true
}
