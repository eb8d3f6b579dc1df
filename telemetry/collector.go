package telemetry

// Population holds collection sizes at the end of a window.
type Population struct {
	Particles int
	Ripples   int
	Sparks    int
}

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event totals for the current window, indexed by EventType
	counts [len(eventNames)]int
	bursts int
}

// NewCollector creates a collector flushing every windowDurationSec simulated seconds
// at dt seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticks := int32(1)
	if dt > 0 {
		ticks = max(int32(windowDurationSec/dt), 1)
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticks,
		dt:                  dt,
	}
}

// Record adds an event to the current window.
func (c *Collector) Record(e Event) {
	if int(e.Type) >= len(c.counts) || e.Count <= 0 {
		return
	}
	c.counts[e.Type] += e.Count
	if e.Type == EventSparkBurst {
		c.bursts++
	}
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces the stats for the current window and starts a new one.
// speeds holds the particle speeds sampled at the end of the window.
func (c *Collector) Flush(currentTick int32, pop Population, speeds []float64, audioLevel float64) WindowStats {
	speed := ComputeSpeedStats(speeds)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Particles: pop.Particles,
		Ripples:   pop.Ripples,
		Sparks:    pop.Sparks,

		RipplesSpawned:  c.counts[EventRippleSpawn],
		RipplesDecayed:  c.counts[EventRippleDecayed],
		RipplesOutgrown: c.counts[EventRippleOutgrown],
		SparkBursts:     c.bursts,
		BurstSparks:     c.counts[EventSparkBurst],
		Ignites:         c.counts[EventIgnite],
		PaletteChanges:  c.counts[EventPaletteChange],
		AudioTriggers:   c.counts[EventAudioTrigger],

		SpeedMean: speed.Mean,
		SpeedStd:  speed.Std,
		SpeedP10:  speed.P10,
		SpeedP50:  speed.P50,
		SpeedP90:  speed.P90,
		SpeedMax:  speed.Max,

		AudioLevel: audioLevel,
	}

	c.windowStartTick = currentTick
	c.counts = [len(eventNames)]int{}
	c.bursts = 0
	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
