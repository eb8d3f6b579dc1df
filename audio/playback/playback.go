// Package playback plays an audio stream through the default output device while
// metering it. Importing it links the platform sound libraries.
package playback

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/lumen/audio"
)

// Play starts playing s and returns a meter that follows what is being heard.
func Play(s beep.Streamer, format beep.Format, fftSize, beatBins int) (*audio.Meter, error) {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(100*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	tap := audio.NewTap(s, format.SampleRate.N(time.Second))
	speaker.Play(tap)
	return audio.NewMeter(tap.Monitor(), format.SampleRate, fftSize, beatBins), nil
}

// Stop stops playback started by Play.
func Stop() {
	speaker.Clear()
}
