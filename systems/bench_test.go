package systems

import (
	"math/rand"
	"testing"
)

func BenchmarkFieldAdvance(b *testing.B) {
	f := newTestField(1)
	f.Configure(620, 0.9, 0.55)
	sparks := NewSparkEmitter(testSparkParams(), 4, rand.New(rand.NewSource(2)))

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		f.Advance(testDT, AttractorAt(640, 400), nil, sparks)
		sparks.Advance(testDT)
	}
}

// Ripple force is evaluated per particle per ripple.
func BenchmarkFieldAdvanceWithRipples(b *testing.B) {
	f := newTestField(1)
	f.Configure(620, 0.9, 0.55)
	ripples := NewRippleSet(testRippleParams())
	for i := 0; i < 16; i++ {
		ripples.Spawn(float64(i*80), 400, 1)
	}
	ripples.Advance(testDT)

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		f.Advance(testDT, NoAttractor, ripples, nil)
	}
}

func BenchmarkRippleForceAt(b *testing.B) {
	ripples := NewRippleSet(testRippleParams())
	for i := 0; i < 32; i++ {
		ripples.Spawn(float64(i*40), 400, 1)
	}
	for i := 0; i < 10; i++ {
		ripples.Advance(testDT)
	}
	p := testBounds().Center()

	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		_ = ripples.ForceAt(p)
	}
}
