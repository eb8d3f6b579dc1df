package game

import (
	"log/slog"
	"math"

	"github.com/pthm-cable/lumen/config"
)

// Slider ranges shared by the front ends.
const (
	MaxCount = 2000
	MaxFlow  = 3.0
	MaxWarp  = 2.0
)

// Settings are the user-adjustable parameters.
// Trail, Glow and Pulse are render hints and do not affect the simulation.
type Settings struct {
	Count int
	Flow  float64
	Warp  float64

	Trail       bool
	Glow        bool
	Pulse       bool
	Sparks      bool // Trail sparks and trigger bursts
	AutoPalette bool // Audio-driven palette cycling
}

// DefaultSettings returns the configured initial settings.
func DefaultSettings(cfg *config.Config) Settings {
	return Settings{
		Count:       cfg.Field.Count,
		Flow:        cfg.Field.Flow,
		Warp:        cfg.Field.Warp,
		Trail:       cfg.Render.Trail,
		Glow:        cfg.Render.Glow,
		Pulse:       cfg.Render.Pulse,
		Sparks:      cfg.Render.Sparks,
		AutoPalette: cfg.Render.AutoPalette,
	}
}

// Configure applies new settings. Negative counts clamp to zero and non-finite
// strengths keep the previous value.
func (g *Game) Configure(s Settings) {
	s.Count = max(s.Count, 0)
	if !isFinite(s.Flow) {
		s.Flow = g.settings.Flow
	}
	if !isFinite(s.Warp) {
		s.Warp = g.settings.Warp
	}

	changed := s.Count != g.settings.Count || s.Flow != g.settings.Flow || s.Warp != g.settings.Warp
	g.settings = s
	g.field.Configure(s.Count, s.Flow, s.Warp)

	if changed {
		slog.Debug("field configured", "count", s.Count, "flow", s.Flow, "warp", s.Warp)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
