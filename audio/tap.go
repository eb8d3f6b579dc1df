package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// Tap passes a stream through unchanged and queues a copy of every sample for a
// monitor stream. The speaker reads the tap on its own goroutine while a Meter reads
// the monitor from the tick loop.
type Tap struct {
	src   beep.Streamer
	mu    sync.Mutex
	queue [][2]float64
	limit int
	ended bool
}

// NewTap wraps src. At most limit samples are queued; older ones are dropped.
func NewTap(src beep.Streamer, limit int) *Tap {
	return &Tap{src: src, limit: max(limit, 1)}
}

// Stream implements beep.Streamer.
func (t *Tap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.src.Stream(samples)

	t.mu.Lock()
	t.queue = append(t.queue, samples[:n]...)
	if over := len(t.queue) - t.limit; over > 0 {
		t.queue = t.queue[:copy(t.queue, t.queue[over:])]
	}
	if !ok {
		t.ended = true
	}
	t.mu.Unlock()

	return n, ok
}

// Err implements beep.Streamer.
func (t *Tap) Err() error {
	return t.src.Err()
}

// Monitor returns a stream of the tapped samples. When the queue runs dry it yields
// silence until the source has ended.
func (t *Tap) Monitor() beep.Streamer {
	return monitor{t}
}

type monitor struct {
	t *Tap
}

func (m monitor) Stream(samples [][2]float64) (int, bool) {
	t := m.t
	t.mu.Lock()
	n := copy(samples, t.queue)
	t.queue = t.queue[:copy(t.queue, t.queue[n:])]
	ended := t.ended && len(t.queue) == 0
	t.mu.Unlock()

	if ended && n == 0 {
		return 0, false
	}
	clear(samples[n:])
	return len(samples), true
}

func (m monitor) Err() error {
	return nil
}
