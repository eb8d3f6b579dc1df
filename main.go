package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/guptarohit/asciigraph"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lumen/audio"
	"github.com/pthm-cable/lumen/audio/playback"
	"github.com/pthm-cable/lumen/config"
	"github.com/pthm-cable/lumen/game"
	"github.com/pthm-cable/lumen/renderer"
	"github.com/pthm-cable/lumen/telemetry"
	"github.com/pthm-cable/lumen/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	audioPath := flag.String("audio", "", "WAV file driving audio-reactive ripples")
	mute := flag.Bool("mute", false, "Meter the audio file without playing it")
	plot := flag.Bool("plot", false, "Print a chart of mean particle speed per stats window when a headless run ends")
	debug := flag.Bool("debug", false, "Log at debug level")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	var speedMeans []float64
	opts := game.Options{
		Config:         cfg,
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
	}
	if *plot {
		opts.StatsCallback = func(s telemetry.WindowStats) {
			speedMeans = append(speedMeans, s.SpeedMean)
		}
	}

	if *audioPath != "" {
		meter, closer, err := openAudio(*audioPath, cfg, *mute || *headless)
		if err != nil {
			slog.Error("failed to open audio", "error", err)
			os.Exit(1)
		}
		defer closer()
		opts.Audio = meter
	}

	if *headless {
		// Headless mode - pure CPU simulation, no raylib needed
		g, err := game.NewGameWithOptions(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Unload()

		slog.Info("starting headless simulation",
			"seed", rngSeed,
			"stats_window", *statsWindow,
			"max_ticks", *maxTicks,
			"audio", *audioPath,
		)
		if *plot && *maxTicks == 0 {
			slog.Warn("-plot needs -max-ticks to finish the run")
		}

		for {
			g.UpdateHeadless()

			if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
				slog.Info("max ticks reached", "tick", g.Tick())
				break
			}
		}

		if *plot {
			printPlot(speedMeans)
		}
		return
	}

	// Graphical mode
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Lumen")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGameWithOptions(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	r := renderer.NewRenderer(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Render.Background, cfg.Render.TrailFade)
	defer r.Unload()

	runWindow(g, r, *maxTicks, *audioPath != "")
}

// runWindow is the graphical main loop.
func runWindow(g *game.Game, r *renderer.Renderer, maxTicks int, audioActive bool) {
	overlays := ui.NewOverlayRegistry()
	controls := ui.NewControlsPanel(10, 10, 250)
	hud := ui.NewHUD()
	perf := ui.NewPerfPanel(10, 0)
	input := ui.NewInput()

	for !rl.WindowShouldClose() {
		overlays.HandleKeys()
		controls.SetVisible(overlays.IsEnabled(ui.OverlayControls))

		input.Poll(g, controls.Bounds(), g.Palettes().Len())
		g.Update(float64(rl.GetFrameTime()))
		g.RecordFrame()

		screenW, screenH := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
		r.Resize(screenW, screenH)

		rl.BeginDrawing()
		r.Draw(g.Frame())

		res := controls.Draw(g.Settings(), g.Palettes())
		applyControls(g, res)

		if overlays.IsEnabled(ui.OverlayHUD) {
			hud.Draw(ui.HUDData{
				Title:        "Lumen",
				Population:   g.Counts(),
				PaletteName:  g.Palettes().Current().Name,
				Energy:       g.Energy(),
				AudioActive:  audioActive,
				Tick:         g.Tick(),
				FPS:          rl.GetFPS(),
				Paused:       g.Paused(),
				ScreenWidth:  screenW,
				ScreenHeight: screenH,
			})
		}
		if overlays.IsEnabled(ui.OverlayPerf) {
			perf.SetPosition(screenW-280, 110)
			perf.Draw(g.PerfStats())
		}
		if overlays.IsEnabled(ui.OverlayLegend) {
			hud.DrawControls(screenH, ui.Legend)
		}
		rl.EndDrawing()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
}

// applyControls forwards panel edits and button presses to the game.
func applyControls(g *game.Game, res ui.ControlsResult) {
	if res.Changed {
		g.Configure(res.Settings)
	}
	if res.SelectPalette >= 0 {
		g.OnPaletteChange(res.SelectPalette)
	}
	if res.NextPalette {
		g.OnNextPalette()
	}
	if res.Ignite {
		g.OnIgnite()
	}
}

// openAudio decodes a WAV file and returns its energy feed. Unless muted the file is
// also played, and the feed follows playback.
func openAudio(path string, cfg *config.Config, muted bool) (*audio.Meter, func(), error) {
	stream, format, err := audio.OpenWAV(path)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := stream.Close(); err != nil {
			slog.Error("closing audio", "error", err)
		}
	}

	if muted {
		return audio.NewMeter(stream, format.SampleRate, cfg.Audio.FFTSize, cfg.Audio.BeatBins), closer, nil
	}

	meter, err := playback.Play(stream, format, cfg.Audio.FFTSize, cfg.Audio.BeatBins)
	if err != nil {
		closer()
		return nil, nil, err
	}
	return meter, func() {
		playback.Stop()
		closer()
	}, nil
}

// printPlot draws the per-window mean particle speed as an ASCII chart.
func printPlot(speedMeans []float64) {
	if len(speedMeans) == 0 {
		slog.Warn("no stats windows completed; nothing to plot")
		return
	}
	fmt.Println(asciigraph.Plot(speedMeans,
		asciigraph.Height(12),
		asciigraph.Width(min(len(speedMeans)*4, 100)),
		asciigraph.Caption("mean particle speed (px/s) per stats window"),
	))
}
