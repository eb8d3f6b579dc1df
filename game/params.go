package game

import (
	"github.com/pthm-cable/lumen/config"
	"github.com/pthm-cable/lumen/systems"
)

func fieldParams(cfg *config.Config) systems.FieldParams {
	f := cfg.Field
	return systems.FieldParams{
		Damping:     f.Damping,
		Stiffness:   f.Stiffness,
		Margin:      f.Margin,
		OrbitMin:    f.OrbitMin,
		OrbitSpread: f.OrbitSpread,
		SpeedMin:    f.SpeedMin,
		SpeedSpread: f.SpeedSpread,
		AmpMin:      f.AmpMin,
		AmpSpread:   f.AmpSpread,
		SizeMin:     f.SizeMin,
		SizeSpread:  f.SizeSpread,
		PulseAmount: f.PulseAmount,
		PulseSpeed:  f.PulseSpeed,
		SparkChance: f.SparkChance,
		KickMax:     f.KickMax,
		MaxDT:       cfg.Physics.MaxDT,
		Attractor: systems.AttractorParams{
			Radius:      cfg.Attractor.Radius,
			Gain:        cfg.Attractor.Gain,
			MinDistance: cfg.Attractor.MinDistance,
		},
	}
}

func rippleParams(cfg *config.Config) systems.RippleParams {
	r := cfg.Ripple
	return systems.RippleParams{
		Growth:      r.Growth,
		Decay:       r.Decay,
		Epsilon:     r.Epsilon,
		MaxRadius:   cfg.Derived.MaxRippleRadius,
		FitBounds:   r.MaxRadius <= 0,
		FrontMargin: r.FrontMargin,
		Push:        r.Push,
		MaxStrength: r.MaxStrength,
		MaxDT:       cfg.Physics.MaxDT,
	}
}

func sparkParams(cfg *config.Config) systems.SparkParams {
	s := cfg.Spark
	return systems.SparkParams{
		BaseCount:       s.BaseCount,
		CountSpread:     s.CountSpread,
		SpeedMin:        s.SpeedMin,
		SpeedSpread:     s.SpeedSpread,
		SizeMin:         s.SizeMin,
		SizeSpread:      s.SizeSpread,
		Alpha:           s.Alpha,
		Drag:            s.Drag,
		Fade:            s.Fade,
		Epsilon:         s.Epsilon,
		MaxIntensity:    s.MaxIntensity,
		MaxSparks:       s.MaxSparks,
		TrailAlpha:      s.TrailAlpha,
		TrailSpeed:      s.TrailSpeed,
		TrailSizeMin:    s.TrailSizeMin,
		TrailSizeSpread: s.TrailSizeSpread,
		MaxDT:           cfg.Physics.MaxDT,
	}
}
