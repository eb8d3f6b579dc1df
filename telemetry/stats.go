package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Collection sizes at window end
	Particles int `csv:"particles"`
	Ripples   int `csv:"ripples"`
	Sparks    int `csv:"sparks"`

	// Events during the window
	RipplesSpawned  int `csv:"ripples_spawned"`
	RipplesDecayed  int `csv:"ripples_decayed"`
	RipplesOutgrown int `csv:"ripples_outgrown"`
	SparkBursts     int `csv:"spark_bursts"`
	BurstSparks     int `csv:"burst_sparks"`
	Ignites         int `csv:"ignites"`
	PaletteChanges  int `csv:"palette_changes"`
	AudioTriggers   int `csv:"audio_triggers"`

	// Particle speed distribution (px/s) at window end
	SpeedMean float64 `csv:"speed_mean"`
	SpeedStd  float64 `csv:"speed_std"`
	SpeedP10  float64 `csv:"speed_p10"`
	SpeedP50  float64 `csv:"speed_p50"`
	SpeedP90  float64 `csv:"speed_p90"`
	SpeedMax  float64 `csv:"speed_max"`

	AudioLevel float64 `csv:"audio_level"`
}

// SpeedStats summarizes a set of particle speeds.
type SpeedStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Percentile calculates the p-th percentile of a sorted slice by linear interpolation.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeSpeedStats calculates mean, sample standard deviation, percentiles and
// maximum. The input is not modified.
func ComputeSpeedStats(values []float64) SpeedStats {
	n := len(values)
	if n == 0 {
		return SpeedStats{}
	}

	var s SpeedStats
	if n == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)
	s.Max = floats.Max(values)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("particles", s.Particles),
		slog.Int("ripples", s.Ripples),
		slog.Int("sparks", s.Sparks),
		slog.Int("ripples_spawned", s.RipplesSpawned),
		slog.Int("ripples_decayed", s.RipplesDecayed),
		slog.Int("ripples_outgrown", s.RipplesOutgrown),
		slog.Int("spark_bursts", s.SparkBursts),
		slog.Int("burst_sparks", s.BurstSparks),
		slog.Int("ignites", s.Ignites),
		slog.Int("palette_changes", s.PaletteChanges),
		slog.Int("audio_triggers", s.AudioTriggers),
		slog.Float64("speed_mean", s.SpeedMean),
		slog.Float64("speed_p50", s.SpeedP50),
		slog.Float64("speed_p90", s.SpeedP90),
		slog.Float64("audio_level", s.AudioLevel),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
