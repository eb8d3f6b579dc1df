package term

import (
	"iter"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/lumen/config"
	"github.com/pthm-cable/lumen/game"
	"github.com/pthm-cable/lumen/palette"
	"github.com/pthm-cable/lumen/systems"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	screen.SetSize(w, h)
	t.Cleanup(screen.Fini)
	return screen
}

func empty[T any]() iter.Seq[T] {
	return func(func(T) bool) {}
}

func testFrame(t *testing.T, trail bool, particles ...systems.ParticleState) game.Frame {
	t.Helper()
	pal, err := palette.Parse("test", []string{"#ff8040"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return game.Frame{
		Particles: func(yield func(systems.ParticleState) bool) {
			for _, p := range particles {
				if !yield(p) {
					return
				}
			}
		},
		Ripples: empty[systems.RippleState](),
		Sparks:  empty[systems.SparkState](),
		Palette: pal,
		Trail:   trail,
	}
}

func runeAt(screen tcell.SimulationScreen, col, row int) rune {
	cells, w, _ := screen.GetContents()
	c := cells[row*w+col]
	if len(c.Runes) == 0 {
		return ' '
	}
	return c.Runes[0]
}

func TestRendererResize(t *testing.T) {
	screen := newTestScreen(t, 80, 25)
	r := NewRenderer(screen, "#000000", 0.12)

	w, h := r.Resize()
	if w != 80*CellWidth || h != 24*CellHeight {
		t.Errorf("Resize() = %v x %v, want %v x %v", w, h, 80*CellWidth, 24*CellHeight)
	}

	screen.SetSize(40, 11)
	w, h = r.Resize()
	if w != 40*CellWidth || h != 10*CellHeight {
		t.Errorf("Resize() after shrink = %v x %v, want %v x %v", w, h, 40*CellWidth, 10*CellHeight)
	}
}

func TestToSim(t *testing.T) {
	x, y := ToSim(0, 0)
	if x != CellWidth/2 || y != CellHeight/2 {
		t.Errorf("ToSim(0, 0) = (%v, %v), want cell center", x, y)
	}
	x, y = ToSim(3, 2)
	if x != 3.5*CellWidth || y != 2.5*CellHeight {
		t.Errorf("ToSim(3, 2) = (%v, %v)", x, y)
	}
}

func TestRendererTrails(t *testing.T) {
	screen := newTestScreen(t, 20, 10)
	r := NewRenderer(screen, "#000000", 0.12)

	x, y := ToSim(2, 3)
	p := systems.ParticleState{Size: 1, BaseSize: 1}
	p.Pos.X, p.Pos.Y = x, y

	r.Draw(testFrame(t, true, p))
	if got := runeAt(screen, 2, 3); got == ' ' {
		t.Fatal("particle cell is blank")
	}

	// Trails keep fading light from the previous frame
	r.Draw(testFrame(t, true))
	if got := runeAt(screen, 2, 3); got == ' ' {
		t.Error("trail cell cleared with trails on")
	}

	r.Draw(testFrame(t, false))
	if got := runeAt(screen, 2, 3); got != ' ' {
		t.Errorf("cell = %q with trails off, want blank", got)
	}
}

func TestRendererDrawsGame(t *testing.T) {
	screen := newTestScreen(t, 80, 25)
	r := NewRenderer(screen, "#0a0c18", 0.12)

	g, err := game.NewGameWithOptions(game.Options{Config: config.Default(), Seed: 7})
	if err != nil {
		t.Fatalf("NewGameWithOptions: %v", err)
	}
	t.Cleanup(g.Unload)
	g.OnResize(r.Resize())

	for i := 0; i < 10; i++ {
		g.Step(1.0 / 60)
	}
	r.Draw(g.Frame())

	cells, w, h := screen.GetContents()
	lit := 0
	for i := 0; i < w*(h-1); i++ {
		if len(cells[i].Runes) > 0 && cells[i].Runes[0] != ' ' {
			lit++
		}
	}
	if lit == 0 {
		t.Error("no lit cells after drawing the field")
	}

	var status strings.Builder
	for col := 0; col < w; col++ {
		status.WriteRune(runeAt(screen, col, h-1))
	}
	if !strings.Contains(status.String(), "lumen") {
		t.Errorf("status line = %q, want it to name the program", status.String())
	}

	r.SetStatus(false)
	r.Draw(g.Frame())
	if got := runeAt(screen, 1, h-1); got == 'l' {
		t.Error("status line still drawn after hiding it")
	}
}
