package systems

import (
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func collectParticles(f *ParticleField) []ParticleState {
	var out []ParticleState
	for p := range f.Snapshot() {
		out = append(out, p)
	}
	return out
}

func TestConfigureCount(t *testing.T) {
	tests := []struct {
		name  string
		steps []int
		want  int
	}{
		{"zero", []int{0}, 0},
		{"negative clamps to empty", []int{-5}, 0},
		{"grow", []int{100}, 100},
		{"grow then shrink", []int{100, 40}, 40},
		{"shrink to zero", []int{100, 0}, 0},
		{"shrink then grow", []int{80, 10, 55}, 55},
		{"negative after grow", []int{30, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(1)
			for _, n := range tt.steps {
				f.Configure(n, 1.0, 0.5)
			}
			if f.Len() != tt.want {
				t.Errorf("Len() = %d, want %d", f.Len(), tt.want)
			}
			if got := len(collectParticles(f)); got != tt.want {
				t.Errorf("snapshot length = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConfigureShrinkKeepsOldestParticles(t *testing.T) {
	f := newTestField(2)
	f.Configure(50, 1.0, 0.5)
	before := collectParticles(f)

	f.Configure(20, 1.0, 0.5)
	after := collectParticles(f)

	for i := range after {
		if after[i].Pos != before[i].Pos || after[i].ColorIndex != before[i].ColorIndex {
			t.Fatalf("particle %d changed after shrink: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestConfigureNonFiniteKeepsLastGood(t *testing.T) {
	f := newTestField(3)
	f.Configure(10, 0.8, 0.3)
	f.Configure(10, math.NaN(), math.Inf(1))

	if f.Flow() != 0.8 {
		t.Errorf("Flow() = %v, want 0.8", f.Flow())
	}
	if f.Warp() != 0.3 {
		t.Errorf("Warp() = %v, want 0.3", f.Warp())
	}
}

func TestAdvanceZeroIsIdempotent(t *testing.T) {
	f := newTestField(4)
	f.Configure(100, 1.0, 0.5)
	rs := NewRippleSet(testRippleParams())
	rs.Spawn(640, 400, 1)

	for i := 0; i < 10; i++ {
		rs.Advance(testDT)
		f.Advance(testDT, AttractorAt(600, 380), rs, nil)
	}

	before := collectParticles(f)
	elapsed := f.Elapsed()
	for _, dt := range []float64{0, -1, math.NaN()} {
		f.Advance(dt, AttractorAt(100, 100), rs, nil)
	}
	after := collectParticles(f)

	if f.Elapsed() != elapsed {
		t.Errorf("elapsed changed: %v -> %v", elapsed, f.Elapsed())
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("particle %d changed on zero step: %+v -> %+v", i, before[i], after[i])
		}
	}
}

func TestAdvanceStaysFiniteAndInBounds(t *testing.T) {
	f := newTestField(5)
	f.Configure(100, 1.0, 0.5)
	margin := testFieldParams().Margin

	for tick := 0; tick < 60; tick++ {
		f.Advance(testDT, NoAttractor, nil, nil)
	}

	for i, p := range collectParticles(f) {
		if !finiteVec(p.Pos) || !finiteVec(p.Vel) {
			t.Fatalf("particle %d not finite: %+v", i, p)
		}
		if !f.Bounds().Within(p.Pos, margin) {
			t.Errorf("particle %d out of bounds: %+v", i, p.Pos)
		}
	}
}

func TestAdvanceResetsEscapedParticle(t *testing.T) {
	f := newTestField(6)
	f.Configure(5, 1.0, 0.5)

	// Throw the first particle far outside the bounds
	e := f.entities[0]
	pos := f.posMap.Get(e)
	pos.X, pos.Y = -10000, 5000

	f.Advance(testDT, NoAttractor, nil, nil)

	got := f.posMap.Get(e)
	if got.X < 0 || got.X > testWidth || got.Y < 0 || got.Y > testHeight {
		t.Errorf("escaped particle not reset inside bounds: (%v, %v)", got.X, got.Y)
	}
	if vel := f.velMap.Get(e); vel.X != 0 || vel.Y != 0 {
		t.Errorf("reset particle should be at rest, got velocity (%v, %v)", vel.X, vel.Y)
	}
}

func TestAdvanceResetsParticleJustPastMargin(t *testing.T) {
	margin := testFieldParams().Margin
	tests := []struct {
		name   string
		x, y   float64
		vx, vy float64
	}{
		{"right edge moving inward", testWidth + margin + 1, 400, -300, 0},
		{"left edge moving inward", -margin - 1, 400, 300, 0},
		{"bottom edge moving inward", 640, testHeight + margin + 1, 0, -300},
		{"top edge at rest", 640, -margin - 0.5, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestField(11)
			f.Configure(3, 1.0, 0.5)

			e := f.entities[0]
			pos, vel := f.posMap.Get(e), f.velMap.Get(e)
			pos.X, pos.Y = tt.x, tt.y
			vel.X, vel.Y = tt.vx, tt.vy

			f.Advance(testDT, NoAttractor, nil, nil)

			got := f.posMap.Get(e)
			if got.X < 0 || got.X > testWidth || got.Y < 0 || got.Y > testHeight {
				t.Errorf("particle not relocated within bounds: (%v, %v)", got.X, got.Y)
			}
		})
	}
}

func TestAdvanceResetsAfterShrinkingBounds(t *testing.T) {
	f := newTestField(7)
	f.Configure(40, 1.0, 0.5)
	f.SetBounds(Bounds{Width: 100, Height: 100})

	f.Advance(testDT, NoAttractor, nil, nil)

	for i, p := range collectParticles(f) {
		if !f.Bounds().Within(p.Pos, testFieldParams().Margin) {
			t.Errorf("particle %d outside resized bounds: %+v", i, p.Pos)
		}
	}
}

func TestAttractorAtZeroDistance(t *testing.T) {
	params := testFieldParams().Attractor
	a := AttractorAt(200, 200)

	force := a.Pull(r2.Vec{X: 200, Y: 200}, 1.0, params)
	if force != (r2.Vec{}) {
		t.Errorf("pull at the attractor itself = %+v, want zero", force)
	}

	near := a.Pull(r2.Vec{X: 200.001, Y: 200}, 1.0, params)
	if !finiteVec(near) {
		t.Fatalf("pull next to attractor not finite: %+v", near)
	}
	want := params.Gain / params.MinDistance
	if math.Abs(r2.Norm(near)-want) > 1e-6 {
		t.Errorf("pull magnitude next to attractor = %v, want clamp %v", r2.Norm(near), want)
	}
	if near.X >= 0 {
		t.Errorf("pull should point toward the attractor, got %+v", near)
	}
}

func TestAttractorRadiusAndValidity(t *testing.T) {
	params := testFieldParams().Attractor

	tests := []struct {
		name string
		a    Attractor
		p    r2.Vec
		zero bool
	}{
		{"inside radius", AttractorAt(0, 0), r2.Vec{X: 100}, false},
		{"outside radius", AttractorAt(0, 0), r2.Vec{X: 500}, true},
		{"inactive", NoAttractor, r2.Vec{X: 10}, true},
		{"nan", AttractorAt(math.NaN(), 0), r2.Vec{X: 10}, true},
		{"inf", Attractor{Pos: r2.Vec{X: math.Inf(1)}, Active: true}, r2.Vec{X: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Pull(tt.p, 1.0, params)
			if (got == r2.Vec{}) != tt.zero {
				t.Errorf("Pull() = %+v, zero = %v, want zero = %v", got, got == r2.Vec{}, tt.zero)
			}
		})
	}
}

func TestAttractorPullsParticles(t *testing.T) {
	params := testFieldParams()
	params.Stiffness = 0
	f := NewParticleField(params, testBounds(), 4, rand.New(rand.NewSource(8)))
	f.Configure(30, 1.0, 0.5)

	target := r2.Vec{X: 640, Y: 400}
	distBefore := 0.0
	for p := range f.Snapshot() {
		distBefore += r2.Norm(r2.Sub(p.Pos, target))
	}

	for i := 0; i < 30; i++ {
		f.Advance(testDT, AttractorAt(target.X, target.Y), nil, nil)
	}

	distAfter := 0.0
	for p := range f.Snapshot() {
		distAfter += r2.Norm(r2.Sub(p.Pos, target))
	}
	if distAfter >= distBefore {
		t.Errorf("attractor did not pull particles closer: %v -> %v", distBefore, distAfter)
	}
}

func TestRecolorOnlyTouchesColors(t *testing.T) {
	f := newTestField(9)
	f.Configure(200, 1.0, 0.5)
	before := collectParticles(f)

	f.Recolor(2, 0)
	after := collectParticles(f)

	for i := range after {
		if after[i].Pos != before[i].Pos {
			t.Fatalf("particle %d moved on recolor", i)
		}
		if after[i].ColorIndex < 0 || after[i].ColorIndex >= 2 {
			t.Fatalf("particle %d color %d outside new palette", i, after[i].ColorIndex)
		}
		if before[i].ColorIndex < 2 && after[i].ColorIndex != before[i].ColorIndex {
			t.Errorf("particle %d recolored with zero chance", i)
		}
	}
}

func TestSnapshotIsRestartable(t *testing.T) {
	f := newTestField(10)
	f.Configure(25, 1.0, 0.5)
	f.Advance(testDT, NoAttractor, nil, nil)

	seq := f.Snapshot()
	var first, second []ParticleState
	for p := range seq {
		first = append(first, p)
	}
	for p := range seq {
		second = append(second, p)
	}
	if len(first) != 25 || len(first) != len(second) {
		t.Fatalf("snapshot lengths %d and %d, want 25", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("snapshot %d differs between iterations", i)
		}
	}

	// Early break must not disturb later iterations
	n := 0
	for range seq {
		n++
		if n == 3 {
			break
		}
	}
	if got := len(collectParticles(f)); got != 25 {
		t.Errorf("snapshot after early break has %d particles, want 25", got)
	}
}

func TestPulseChangesSizeAroundBase(t *testing.T) {
	f := newTestField(11)
	f.Configure(10, 1.0, 0.5)
	f.Advance(0.05, NoAttractor, nil, nil)

	amount := testFieldParams().PulseAmount
	for p := range f.Snapshot() {
		lo, hi := p.BaseSize*(1-amount), p.BaseSize*(1+amount)
		if p.Size < lo-1e-9 || p.Size > hi+1e-9 {
			t.Errorf("pulsed size %v outside [%v, %v]", p.Size, lo, hi)
		}
	}
}

func TestKickPushesOutward(t *testing.T) {
	f := newTestField(12)
	f.Configure(20, 1.0, 0.5)
	f.Kick(1)

	center := f.Center()
	for _, e := range f.entities {
		pos := f.posMap.Get(e)
		vel := f.velMap.Get(e)
		out := r2.Sub(r2.Vec{X: pos.X, Y: pos.Y}, center)
		if r2.Dot(out, r2.Vec{X: vel.X, Y: vel.Y}) < 0 {
			t.Errorf("kick pointed inward for particle at (%v, %v)", pos.X, pos.Y)
		}
	}
}

type countingSink struct {
	n int
}

func (s *countingSink) Emit(p r2.Vec, colorIndex int) {
	s.n++
}

func TestTrailSparksEmitted(t *testing.T) {
	params := testFieldParams()
	params.SparkChance = 1
	f := NewParticleField(params, testBounds(), 4, rand.New(rand.NewSource(13)))
	f.Configure(15, 1.0, 0.5)

	sink := &countingSink{}
	f.Advance(testDT, NoAttractor, nil, sink)
	if sink.n != 15 {
		t.Errorf("emitted %d trail sparks, want 15", sink.n)
	}

	sink.n = 0
	f.Advance(0, NoAttractor, nil, sink)
	if sink.n != 0 {
		t.Errorf("zero step emitted %d sparks", sink.n)
	}
}

func TestSpawnStartsOnOrbit(t *testing.T) {
	f := newTestField(14)
	f.Configure(1, 1.0, 0.5)
	e := f.entities[0]
	motion := f.motMap.Get(e)
	pos := f.posMap.Get(e)

	want := f.target(motion, 0)
	got := r2.Vec{X: pos.X, Y: pos.Y}
	if r2.Norm(r2.Sub(want, got)) > 1e-9 {
		t.Errorf("new particle at %+v, want orbit target %+v", got, want)
	}
}
