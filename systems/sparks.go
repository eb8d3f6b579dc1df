package systems

import (
	"iter"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// SparkParams configures a SparkEmitter.
type SparkParams struct {
	BaseCount       float64 // Sparks per unit intensity
	CountSpread     float64 // Random extra sparks per unit intensity
	SpeedMin        float64
	SpeedSpread     float64
	SizeMin         float64
	SizeSpread      float64
	Alpha           float64 // Starting alpha of burst sparks
	Drag            float64 // Velocity factor per 1/60 s
	Fade            float64 // Alpha factor per 1/60 s
	Epsilon         float64 // Alpha below which a spark expires
	MaxIntensity    float64
	MaxSparks       int
	TrailAlpha      float64
	TrailSpeed      float64
	TrailSizeMin    float64
	TrailSizeSpread float64
	MaxDT           float64
}

// Spark is a short-lived decaying point.
type Spark struct {
	Pos        r2.Vec
	Vel        r2.Vec
	Alpha      float64
	Size       float64
	ColorIndex int
}

// SparkState is the read-only draw state of a spark.
type SparkState struct {
	Pos        r2.Vec
	Alpha      float64
	Size       float64
	ColorIndex int
}

// SparkSink accepts single trail sparks emitted by moving particles.
type SparkSink interface {
	Emit(p r2.Vec, colorIndex int)
}

// SparkEmitter manages spark bursts and trail sparks.
type SparkEmitter struct {
	sparks      []Spark
	params      SparkParams
	rng         *rand.Rand
	paletteSize int
}

// NewSparkEmitter creates a new spark emitter.
func NewSparkEmitter(params SparkParams, paletteSize int, rng *rand.Rand) *SparkEmitter {
	e := &SparkEmitter{
		sparks: make([]Spark, 0, 256),
		params: params,
		rng:    rng,
	}
	e.SetPaletteSize(paletteSize)
	return e
}

// SetPaletteSize sets the number of colors new sparks pick from.
func (e *SparkEmitter) SetPaletteSize(n int) {
	e.paletteSize = max(n, 1)
}

// BurstRange returns the smallest and largest burst size for an intensity.
// The upper bound is exclusive.
func (e *SparkEmitter) BurstRange(intensity float64) (lo, hi int) {
	intensity = e.clampIntensity(intensity)
	lo = int(e.params.BaseCount * intensity)
	hi = int(math.Ceil((e.params.BaseCount + e.params.CountSpread) * intensity))
	return lo, hi
}

func (e *SparkEmitter) clampIntensity(intensity float64) float64 {
	if !isFinite(intensity) || intensity <= 0 {
		return 0
	}
	if e.params.MaxIntensity > 0 {
		intensity = min(intensity, e.params.MaxIntensity)
	}
	return intensity
}

// SpawnBurst emits a radial burst of sparks at (x, y).
// The burst holds floor(base*I + U*spread*I) sparks.
// Returns the number of sparks actually created.
func (e *SparkEmitter) SpawnBurst(x, y, intensity float64) int {
	origin := r2.Vec{X: x, Y: y}
	intensity = e.clampIntensity(intensity)
	if intensity == 0 || !finiteVec(origin) {
		return 0
	}

	count := int(e.params.BaseCount*intensity + e.rng.Float64()*e.params.CountSpread*intensity)
	created := 0
	for i := 0; i < count; i++ {
		if !e.hasRoom() {
			break
		}
		angle := e.rng.Float64() * 2 * math.Pi
		speed := e.params.SpeedMin + e.rng.Float64()*e.params.SpeedSpread
		e.sparks = append(e.sparks, Spark{
			Pos:        origin,
			Vel:        r2.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Alpha:      e.params.Alpha,
			Size:       e.params.SizeMin + e.rng.Float64()*e.params.SizeSpread,
			ColorIndex: e.rng.Intn(e.paletteSize),
		})
		created++
	}
	return created
}

// Emit adds a single slow trail spark at p.
func (e *SparkEmitter) Emit(p r2.Vec, colorIndex int) {
	if !e.hasRoom() || !finiteVec(p) {
		return
	}
	e.sparks = append(e.sparks, Spark{
		Pos: p,
		Vel: r2.Vec{
			X: (e.rng.Float64() - 0.5) * 2 * e.params.TrailSpeed,
			Y: (e.rng.Float64() - 0.5) * 2 * e.params.TrailSpeed,
		},
		Alpha:      e.params.TrailAlpha,
		Size:       e.params.TrailSizeMin + e.rng.Float64()*e.params.TrailSizeSpread,
		ColorIndex: colorIndex,
	})
}

func (e *SparkEmitter) hasRoom() bool {
	return e.params.MaxSparks <= 0 || len(e.sparks) < e.params.MaxSparks
}

// Advance moves every spark, fades it, and drops the ones below epsilon.
// Returns the number of sparks removed.
func (e *SparkEmitter) Advance(dt float64) int {
	dt = sanitizeDT(dt, e.params.MaxDT)
	if dt == 0 {
		return 0
	}

	drag := perTick(e.params.Drag, dt)
	fade := perTick(e.params.Fade, dt)
	alive := 0
	for i := range e.sparks {
		s := &e.sparks[i]

		s.Pos = r2.Add(s.Pos, r2.Scale(dt, s.Vel))
		s.Vel = r2.Scale(drag, s.Vel)
		s.Alpha *= fade

		if s.Alpha < e.params.Epsilon {
			continue
		}

		e.sparks[alive] = e.sparks[i]
		alive++
	}
	removed := len(e.sparks) - alive
	clear(e.sparks[alive:])
	e.sparks = e.sparks[:alive]
	return removed
}

// Sparks returns a restartable sequence over the live sparks.
func (e *SparkEmitter) Sparks() iter.Seq[SparkState] {
	return func(yield func(SparkState) bool) {
		for i := range e.sparks {
			s := &e.sparks[i]
			if !yield(SparkState{Pos: s.Pos, Alpha: s.Alpha, Size: s.Size, ColorIndex: s.ColorIndex}) {
				return
			}
		}
	}
}

// Len returns the current number of live sparks.
func (e *SparkEmitter) Len() int {
	return len(e.sparks)
}

// Clear removes every spark.
func (e *SparkEmitter) Clear() {
	clear(e.sparks)
	e.sparks = e.sparks[:0]
}
