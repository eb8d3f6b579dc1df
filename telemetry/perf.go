package telemetry

import (
	"log/slog"
	"time"
)

// Step phases in execution order.
const (
	PhaseInput     = "input"
	PhaseRipples   = "ripples"
	PhaseParticles = "particles"
	PhaseSparks    = "sparks"
	PhaseTelemetry = "telemetry"
)

// Phases lists the step phases in execution order.
var Phases = []string{PhaseInput, PhaseRipples, PhaseParticles, PhaseSparks, PhaseTelemetry}

// PerfSample is one timed step and the population it worked on.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
	Load         Population
}

// PerfCollector keeps a ring of the last windowSize step samples.
type PerfCollector struct {
	now func() time.Time

	ring  []PerfSample
	next  int
	count int

	tickStart  time.Time
	phaseStart time.Time
	phase      string
	phases     map[string]time.Duration

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks
// (60 when windowSize is not positive).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		now:    time.Now,
		ring:   make([]PerfSample, windowSize),
		phases: make(map[string]time.Duration, len(Phases)),
	}
}

// StartTick begins timing a step.
func (p *PerfCollector) StartTick() {
	p.tickStart = p.now()
	p.phases = make(map[string]time.Duration, len(Phases))
	p.phase = ""
}

// StartPhase closes the running phase, if any, and opens the next one.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = phase
}

// EndTick closes the step and records it together with the population it advanced.
func (p *PerfCollector) EndTick(load Population) {
	now := p.now()
	p.closePhase(now)

	p.ring[p.next] = PerfSample{
		TickDuration: now.Sub(p.tickStart),
		Phases:       p.phases,
		Load:         load,
	}
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// RecordFrame records the time since the previous call.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats aggregates the samples in the window.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64 // share of the average tick

	// Mean population per step
	AvgParticles float64
	AvgRipples   float64
	AvgSparks    float64

	// Particles phase time divided by particle count
	PerParticle time.Duration

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameDuration: p.frame,
	}
	if p.frame > 0 {
		stats.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.count == 0 {
		return stats
	}

	var total time.Duration
	var particles, ripples, sparks int
	phaseSum := make(map[string]time.Duration)
	for i, s := range p.ring[:p.count] {
		total += s.TickDuration
		if i == 0 || s.TickDuration < stats.MinTickDuration {
			stats.MinTickDuration = s.TickDuration
		}
		stats.MaxTickDuration = max(stats.MaxTickDuration, s.TickDuration)
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
		particles += s.Load.Particles
		ripples += s.Load.Ripples
		sparks += s.Load.Sparks
	}

	n := time.Duration(p.count)
	stats.AvgTickDuration = total / n
	for phase, sum := range phaseSum {
		stats.PhaseAvg[phase] = sum / n
		if stats.AvgTickDuration > 0 {
			stats.PhasePct[phase] = float64(sum/n) / float64(stats.AvgTickDuration) * 100
		}
	}
	if stats.AvgTickDuration > 0 {
		stats.TicksPerSecond = float64(time.Second) / float64(stats.AvgTickDuration)
	}

	stats.AvgParticles = float64(particles) / float64(p.count)
	stats.AvgRipples = float64(ripples) / float64(p.count)
	stats.AvgSparks = float64(sparks) / float64(p.count)
	if particles > 0 {
		stats.PerParticle = phaseSum[PhaseParticles] / time.Duration(particles)
	}
	return stats
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("min_tick_us", s.MinTickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("avg_particles", s.AvgParticles),
		slog.Float64("avg_ripples", s.AvgRipples),
		slog.Float64("avg_sparks", s.AvgSparks),
		slog.Int64("particle_ns", s.PerParticle.Nanoseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range Phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd    int32   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	AvgParticles float64 `csv:"avg_particles"`
	AvgRipples   float64 `csv:"avg_ripples"`
	AvgSparks    float64 `csv:"avg_sparks"`
	ParticleNS   int64   `csv:"particle_ns"`
	InputPct     float64 `csv:"input_pct"`
	RipplesPct   float64 `csv:"ripples_pct"`
	ParticlesPct float64 `csv:"particles_pct"`
	SparksPct    float64 `csv:"sparks_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the statistics into a perf.csv row.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		AvgParticles: s.AvgParticles,
		AvgRipples:   s.AvgRipples,
		AvgSparks:    s.AvgSparks,
		ParticleNS:   s.PerParticle.Nanoseconds(),
		InputPct:     s.PhasePct[PhaseInput],
		RipplesPct:   s.PhasePct[PhaseRipples],
		ParticlesPct: s.PhasePct[PhaseParticles],
		SparksPct:    s.PhasePct[PhaseSparks],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
