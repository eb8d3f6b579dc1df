package game

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r2"
)

// flushTelemetry closes the stats window when it is complete.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.Counts(), g.sampleSpeeds(), g.energy.Average)
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		slog.Info("perf", "stats", perfStats)
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			logError("writing telemetry", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			logError("writing perf", err)
		}
	}
}

// sampleSpeeds collects the speed of every particle.
func (g *Game) sampleSpeeds() []float64 {
	speeds := make([]float64, 0, g.field.Len())
	for p := range g.field.Snapshot() {
		speeds = append(speeds, r2.Norm(p.Vel))
	}
	return speeds
}

func logError(msg string, err error) {
	slog.Error(msg, "error", err)
}
