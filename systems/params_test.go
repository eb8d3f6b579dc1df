package systems

import "math/rand"

const (
	testWidth  = 1280
	testHeight = 800
	testDT     = 1.0 / 60.0
)

func testBounds() Bounds {
	return Bounds{Width: testWidth, Height: testHeight}
}

func testFieldParams() FieldParams {
	return FieldParams{
		Damping:     0.96,
		Stiffness:   6,
		Margin:      50,
		OrbitMin:    30,
		OrbitSpread: 0.35,
		SpeedMin:    0.12,
		SpeedSpread: 0.18,
		AmpMin:      8,
		AmpSpread:   22,
		SizeMin:     0.6,
		SizeSpread:  1.8,
		PulseAmount: 0.25,
		PulseSpeed:  2,
		SparkChance: 0.0035,
		KickMax:     240,
		MaxDT:       0.06,
		Attractor: AttractorParams{
			Radius:      240,
			Gain:        3600,
			MinDistance: 12,
		},
	}
}

func testRippleParams() RippleParams {
	return RippleParams{
		Growth:      300,
		Decay:       0.96,
		Epsilon:     0.02,
		MaxRadius:   testWidth,
		FrontMargin: 40,
		Push:        900,
		MaxStrength: 4,
		MaxDT:       0.06,
	}
}

func testSparkParams() SparkParams {
	return SparkParams{
		BaseCount:       12,
		CountSpread:     10,
		SpeedMin:        60,
		SpeedSpread:     144,
		SizeMin:         1,
		SizeSpread:      2.2,
		Alpha:           0.9,
		Drag:            0.97,
		Fade:            0.94,
		Epsilon:         0.02,
		MaxIntensity:    8,
		MaxSparks:       2000,
		TrailAlpha:      0.65,
		TrailSpeed:      27,
		TrailSizeMin:    0.8,
		TrailSizeSpread: 1.8,
		MaxDT:           0.06,
	}
}

func newTestField(seed int64) *ParticleField {
	return NewParticleField(testFieldParams(), testBounds(), 4, rand.New(rand.NewSource(seed)))
}
