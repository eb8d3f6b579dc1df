package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lumen/audio"
	"github.com/pthm-cable/lumen/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Population   telemetry.Population
	PaletteName  string
	Energy       audio.Energy
	AudioActive  bool
	Tick         int32
	FPS          int32
	Paused       bool
	ScreenWidth  int32
	ScreenHeight int32
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD in the top right corner.
func (h *HUD) Draw(data HUDData) {
	const width = int32(260)
	x := data.ScreenWidth - width - 10
	y := int32(10)

	rl.DrawText(data.Title, x, y, 20, rl.RayWhite)
	y += 25

	rl.DrawText(
		fmt.Sprintf("Particles: %d | Ripples: %d | Sparks: %d",
			data.Population.Particles, data.Population.Ripples, data.Population.Sparks),
		x, y, 12, rl.LightGray,
	)
	y += 16

	rl.DrawText(
		fmt.Sprintf("Tick: %d | FPS: %d | Palette: %s", data.Tick, data.FPS, data.PaletteName),
		x, y, 12, rl.LightGray,
	)
	y += 16

	if data.AudioActive {
		y = h.renderer.DrawLevelBar(x, y, "Audio", float32(data.Energy.Average), 255, width)
	}

	if data.Paused {
		rl.DrawText("PAUSED", x, y, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the step phase timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Step Performance", x, y, 16, rl.RayWhite)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s | Max: %s",
		stats.AvgTickDuration.Round(time.Microsecond),
		stats.MaxTickDuration.Round(time.Microsecond)),
		x, y, 14, rl.Yellow)
	y += 16

	rl.DrawText(fmt.Sprintf("Load: %.0f particles, %.1f ripples, %.0f sparks | %s/particle",
		stats.AvgParticles, stats.AvgRipples, stats.AvgSparks, stats.PerParticle),
		x, y, 12, rl.LightGray)
	y += 16

	for _, phase := range telemetry.Phases {
		avg := stats.PhaseAvg[phase]
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
