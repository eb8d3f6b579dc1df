// Command lumenterm runs the particle field in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/lumen/audio"
	"github.com/pthm-cable/lumen/config"
	"github.com/pthm-cable/lumen/game"
	"github.com/pthm-cable/lumen/term"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	audioPath := flag.String("audio", "", "WAV file driving audio-reactive ripples (metered, not played)")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	count := flag.Int("count", 0, "Particle count (0 = scale to the terminal)")
	flag.Parse()

	if err := run(*configPath, *seed, *audioPath, *logPath, *count); err != nil {
		fmt.Fprintf(os.Stderr, "lumenterm: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, audioPath, logPath string, count int) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	opts := game.Options{Config: cfg, Seed: seed}
	if audioPath != "" {
		stream, format, err := audio.OpenWAV(audioPath)
		if err != nil {
			return err
		}
		defer stream.Close()
		opts.Audio = audio.NewMeter(stream, format.SampleRate, cfg.Audio.FFTSize, cfg.Audio.BeatBins)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		return err
	}
	defer g.Unload()

	r := term.NewRenderer(screen, cfg.Render.Background, cfg.Render.TrailFade)
	g.OnResize(r.Resize())

	// One particle per six cells unless set
	settings := g.Settings()
	settings.Count = count
	if count <= 0 {
		w, h := r.SimSize()
		settings.Count = min(int(w*h/(cellArea*6)), cfg.Field.Count)
	}
	g.Configure(settings)

	loop(screen, g, r)
	return nil
}

// cellArea is the simulation area one terminal cell covers.
const cellArea = term.CellWidth * term.CellHeight

// loop is the sole writer of game state. Terminal events arrive on a channel from
// the polling goroutine.
func loop(screen tcell.Screen, g *game.Game, r *term.Renderer) {
	ticker := time.NewTicker(16 * time.Millisecond) // ~60 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	input := term.NewInput(g.Palettes().Len())
	status := true
	last := time.Now()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return
			}
			switch input.Handle(ev, g) {
			case term.ActionQuit:
				return
			case term.ActionResize:
				screen.Sync()
				g.OnResize(r.Resize())
			case term.ActionToggleStatus:
				status = !status
				r.SetStatus(status)
			}

		case now := <-ticker.C:
			g.Update(now.Sub(last).Seconds())
			last = now
			g.RecordFrame()
			r.Draw(g.Frame())
		}
	}
}
