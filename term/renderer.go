// Package term draws game frames into a terminal with tcell and maps terminal
// events to game events.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/lumen/game"
)

// Simulation units per terminal cell. Cells are about twice as tall as wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// glyphs by accumulated brightness, dimmest first.
var glyphs = []rune{'·', '∙', '•', '*', '✦', '█'}

// cell accumulates the light that landed in one terminal cell.
type cell struct {
	weight float64
	color  colorful.Color
}

// Renderer owns an accumulation grid the size of the screen, one row shorter for
// the status line.
type Renderer struct {
	screen     tcell.Screen
	cols, rows int
	cells      []cell
	background colorful.Color
	trailKeep  float64 // Share of last frame's light kept when trails are on
	status     bool
}

// NewRenderer creates a renderer for screen. background is a hex color; invalid
// values fall back to black.
func NewRenderer(screen tcell.Screen, background string, trailFade float64) *Renderer {
	bg, err := colorful.Hex(background)
	if err != nil {
		bg = colorful.Color{}
	}
	r := &Renderer{
		screen:     screen,
		background: bg,
		trailKeep:  1 - min(max(trailFade, 0), 1),
		status:     true,
	}
	r.Resize()
	return r
}

// Resize matches the grid to the screen and returns the simulation size it covers.
func (r *Renderer) Resize() (w, h float64) {
	cols, rows := r.screen.Size()
	rows = max(rows-1, 1)
	cols = max(cols, 1)
	if cols != r.cols || rows != r.rows {
		r.cols, r.rows = cols, rows
		r.cells = make([]cell, cols*rows)
	}
	return r.SimSize()
}

// SimSize returns the simulation size covered by the grid.
func (r *Renderer) SimSize() (w, h float64) {
	return float64(r.cols) * CellWidth, float64(r.rows) * CellHeight
}

// ToSim converts a cell position to the simulation point at its center.
func ToSim(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * CellWidth, (float64(row) + 0.5) * CellHeight
}

// SetStatus shows or hides the status line.
func (r *Renderer) SetStatus(on bool) {
	r.status = on
}

// Draw renders a frame and shows it.
func (r *Renderer) Draw(f game.Frame) {
	keep := 0.0
	if f.Trail {
		keep = r.trailKeep
	}
	for i := range r.cells {
		r.cells[i].weight *= keep
	}

	pal := f.Palette
	for p := range f.Particles {
		size := p.BaseSize
		if f.Pulse {
			size = p.Size
		}
		weight := 0.35 + 0.25*size
		if f.Glow {
			r.add(p.Pos.X, p.Pos.Y, weight, pal.Glow(p.ColorIndex, 0.3))
		} else {
			r.add(p.Pos.X, p.Pos.Y, weight, pal.At(p.ColorIndex))
		}
	}
	for s := range f.Sparks {
		r.add(s.Pos.X, s.Pos.Y, s.Alpha, pal.Glow(s.ColorIndex, 0.2))
	}
	for rp := range f.Ripples {
		r.ring(rp.Origin.X, rp.Origin.Y, rp.Radius, 0.8*rp.Intensity, pal.Glow(0, 0.5))
	}

	r.screen.Clear()
	bgStyle := tcell.StyleDefault.Background(toTcell(r.background))
	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			c := &r.cells[row*r.cols+col]
			if c.weight < 0.05 {
				r.screen.SetContent(col, row, ' ', nil, bgStyle)
				continue
			}
			g := glyphs[min(int(c.weight*2), len(glyphs)-1)]
			fg := r.background.BlendRgb(c.color, min(c.weight, 1))
			r.screen.SetContent(col, row, g, nil, bgStyle.Foreground(toTcell(fg)))
		}
	}

	if f.Attractor.Active {
		col, row := int(f.Attractor.Pos.X/CellWidth), int(f.Attractor.Pos.Y/CellHeight)
		if r.inside(col, row) {
			r.screen.SetContent(col, row, '+', nil, bgStyle.Foreground(tcell.ColorWhite))
		}
	}

	if r.status {
		r.drawStatus(f)
	}
	r.screen.Show()
}

// add deposits light at a simulation point, blending colors by weight.
func (r *Renderer) add(x, y, weight float64, c colorful.Color) {
	if !(weight > 0) {
		return
	}
	col, row := int(math.Floor(x/CellWidth)), int(math.Floor(y/CellHeight))
	if !r.inside(col, row) {
		return
	}
	cl := &r.cells[row*r.cols+col]
	total := cl.weight + weight
	if cl.weight <= 0 {
		cl.color = c
	} else {
		cl.color = cl.color.BlendRgb(c, weight/total)
	}
	cl.weight = total
}

// ring deposits light along a circle, one sample per cell width of arc.
func (r *Renderer) ring(x, y, radius, weight float64, c colorful.Color) {
	if !(radius > 0) || !(weight > 0) {
		return
	}
	steps := max(int(2*math.Pi*radius/CellWidth), 8)
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		r.add(x+math.Cos(a)*radius, y+math.Sin(a)*radius, weight, c)
	}
}

func (r *Renderer) inside(col, row int) bool {
	return col >= 0 && col < r.cols && row >= 0 && row < r.rows
}

func (r *Renderer) drawStatus(f game.Frame) {
	state := "running"
	if f.Paused {
		state = "paused"
	}
	line := fmt.Sprintf(" lumen | %s | palette %d %s | tick %d | click ripple, space burst, i ignite, p palette, k pause, q quit",
		state, f.PaletteIndex+1, f.Palette.Name, f.Tick)
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	row := r.rows
	col := 0
	for _, ch := range line {
		if col >= r.cols {
			break
		}
		r.screen.SetContent(col, row, ch, nil, style)
		col++
	}
	for ; col < r.cols; col++ {
		r.screen.SetContent(col, row, ' ', nil, style)
	}
}

func toTcell(c colorful.Color) tcell.Color {
	cr, cg, cb := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(cr), int32(cg), int32(cb))
}
