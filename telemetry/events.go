// Package telemetry provides step timing, windowed field statistics and CSV output.
package telemetry

// EventType identifies telemetry events.
type EventType uint8

const (
	EventRippleSpawn EventType = iota
	EventRippleDecayed
	EventRippleOutgrown
	EventSparkBurst
	EventIgnite
	EventPaletteChange
	EventAudioTrigger
)

var eventNames = [...]string{
	EventRippleSpawn:    "ripple_spawn",
	EventRippleDecayed:  "ripple_decayed",
	EventRippleOutgrown: "ripple_outgrown",
	EventSparkBurst:     "spark_burst",
	EventIgnite:         "ignite",
	EventPaletteChange:  "palette_change",
	EventAudioTrigger:   "audio_trigger",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return "unknown"
}

// Event is a single telemetry event. Count carries the number of items the event
// covers, such as sparks in a burst or ripples expired in one step.
type Event struct {
	Type  EventType
	Tick  int32
	Count int
}

// NewRippleSpawnEvent records one spawned ripple.
func NewRippleSpawnEvent(tick int32) Event {
	return Event{Type: EventRippleSpawn, Tick: tick, Count: 1}
}

// NewRippleExpiryEvents returns the expiry events for one step, skipping empty counts.
func NewRippleExpiryEvents(tick int32, decayed, outgrown int) []Event {
	var events []Event
	if decayed > 0 {
		events = append(events, Event{Type: EventRippleDecayed, Tick: tick, Count: decayed})
	}
	if outgrown > 0 {
		events = append(events, Event{Type: EventRippleOutgrown, Tick: tick, Count: outgrown})
	}
	return events
}

// NewSparkBurstEvent records a burst that created sparks sparks.
func NewSparkBurstEvent(tick int32, sparks int) Event {
	return Event{Type: EventSparkBurst, Tick: tick, Count: sparks}
}

// NewIgniteEvent records an ignite action.
func NewIgniteEvent(tick int32) Event {
	return Event{Type: EventIgnite, Tick: tick, Count: 1}
}

// NewPaletteChangeEvent records a palette switch.
func NewPaletteChangeEvent(tick int32) Event {
	return Event{Type: EventPaletteChange, Tick: tick, Count: 1}
}

// NewAudioTriggerEvent records a ripple triggered by the audio feed.
func NewAudioTriggerEvent(tick int32) Event {
	return Event{Type: EventAudioTrigger, Tick: tick, Count: 1}
}
