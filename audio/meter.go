// Package audio turns a sample stream into the energy levels that drive
// audio-reactive ripples.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/dsp/window"
)

// Level scaling follows the usual analyser conventions: magnitudes in decibels
// mapped from [minDecibels, maxDecibels] onto 0..255.
const (
	minDecibels = -100.0
	maxDecibels = -30.0
	maxLevel    = 255.0
)

// Energy is one reading of the feed.
type Energy struct {
	Average float64 // Mean level over all bins, 0..255
	Beat    float64 // Peak level over the low bins, 0..1
}

// Meter reads a stream in simulated time and measures its spectrum.
// It is not safe for concurrent use.
type Meter struct {
	src      beep.Streamer
	rate     beep.SampleRate
	fft      *fourier.FFT
	size     int
	beatBins int
	// Temporal smoothing of bin magnitudes, in [0, 1)
	smoothing float64

	ring  []float64 // last size mono samples
	pos   int
	frame []float64
	coeff []complex128
	mags  []float64
	bins  []float64
	chunk [][2]float64
	done  bool
	last  Energy
}

// NewMeter creates a meter over src. fftSize is rounded up to a power of two.
func NewMeter(src beep.Streamer, rate beep.SampleRate, fftSize, beatBins int) *Meter {
	size := 1
	for size < max(fftSize, 32) {
		size <<= 1
	}
	nbins := size / 2
	return &Meter{
		src:       src,
		rate:      rate,
		fft:       fourier.NewFFT(size),
		size:      size,
		beatBins:  min(max(beatBins, 1), nbins),
		smoothing: 0.82,
		ring:      make([]float64, size),
		frame:     make([]float64, size),
		coeff:     make([]complex128, size/2+1),
		mags:      make([]float64, nbins),
		bins:      make([]float64, nbins),
		chunk:     make([][2]float64, 512),
	}
}

// Level advances the stream by dt seconds and returns the current energy.
// A zero or negative dt returns the previous reading.
func (m *Meter) Level(dt float64) Energy {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return m.last
	}
	n := m.rate.N(time.Duration(dt * float64(time.Second)))
	m.pull(n)
	m.last = m.measure()
	return m.last
}

// Done reports whether the stream has ended.
func (m *Meter) Done() bool {
	return m.done
}

// Bins returns the byte-scaled spectrum of the last reading.
// The slice is reused by the next call to Level.
func (m *Meter) Bins() []float64 {
	return m.bins
}

func (m *Meter) pull(n int) {
	for n > 0 && !m.done {
		k := min(n, len(m.chunk))
		got, ok := m.src.Stream(m.chunk[:k])
		for i := 0; i < got; i++ {
			m.ring[m.pos] = (m.chunk[i][0] + m.chunk[i][1]) / 2
			m.pos = (m.pos + 1) % m.size
		}
		n -= got
		if !ok || got == 0 {
			m.done = true
		}
	}
	if m.done {
		// Ended streams fade to silence
		clear(m.ring)
	}
}

func (m *Meter) measure() Energy {
	// Unroll the ring oldest first
	copy(m.frame, m.ring[m.pos:])
	copy(m.frame[m.size-m.pos:], m.ring[:m.pos])
	window.Hann(m.frame)
	m.coeff = m.fft.Coefficients(m.coeff, m.frame)

	var e Energy
	var sum float64
	scale := 1 / float64(m.size)
	for k := range m.bins {
		mag := cmplxAbs(m.coeff[k]) * scale
		m.mags[k] = m.smoothing*m.mags[k] + (1-m.smoothing)*mag
		level := toLevel(m.mags[k])
		m.bins[k] = level
		sum += level
		if k < m.beatBins && level/maxLevel > e.Beat {
			e.Beat = level / maxLevel
		}
	}
	e.Average = sum / float64(len(m.bins))
	return e
}

func cmplxAbs(c complex128) float64 {
	return math.Hypot(real(c), imag(c))
}

func toLevel(mag float64) float64 {
	if !(mag > 0) {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := (db - minDecibels) / (maxDecibels - minDecibels) * maxLevel
	return math.Max(0, math.Min(maxLevel, v))
}
