package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/lumen/game"
	"github.com/pthm-cable/lumen/palette"
)

// ControlsResult is what the user did with the panel this frame.
type ControlsResult struct {
	Settings      game.Settings
	Changed       bool
	Ignite        bool
	NextPalette   bool
	SelectPalette int // -1 when no chip was clicked
}

// ControlsPanel renders the settings sliders, toggles and action buttons.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// SetVisible shows or hides the panel.
func (c *ControlsPanel) SetVisible(visible bool) {
	c.visible = visible
}

// Bounds returns the area the panel covered on its last draw. Clicks inside it
// belong to the panel, not the field.
func (c *ControlsPanel) Bounds() rl.Rectangle {
	if !c.visible {
		return rl.Rectangle{}
	}
	return rl.Rectangle{X: float32(c.x), Y: float32(c.y), Width: float32(c.width), Height: float32(c.height)}
}

// Draw renders the panel and returns the edited settings and pressed actions.
func (c *ControlsPanel) Draw(s game.Settings, palettes *palette.Set) ControlsResult {
	res := ControlsResult{Settings: s, SelectPalette: -1}
	if !c.visible {
		return res
	}

	r := c.renderer
	padding := r.Theme.Padding
	inner := c.width - padding*2

	if c.height > 0 {
		r.DrawPanel(c.x, c.y, c.width, c.height)
	}

	x := c.x + padding
	y := c.y + padding

	y = r.DrawSectionHeader(x, y, "Field")

	count := c.slider(x, &y, inner, "Particles", fmt.Sprintf("%d", s.Count), float32(s.Count), 0, game.MaxCount)
	if int(count) != s.Count {
		res.Settings.Count = int(count)
	}
	flow := c.slider(x, &y, inner, "Flow", fmt.Sprintf("%.2f", s.Flow), float32(s.Flow), 0, game.MaxFlow)
	if flow != float32(s.Flow) {
		res.Settings.Flow = float64(flow)
	}
	warp := c.slider(x, &y, inner, "Warp", fmt.Sprintf("%.2f", s.Warp), float32(s.Warp), 0, game.MaxWarp)
	if warp != float32(s.Warp) {
		res.Settings.Warp = float64(warp)
	}

	y += 4
	y = r.DrawSectionHeader(x, y, "Render")
	res.Settings.Trail = c.checkBox(x, &y, "Trails", s.Trail)
	res.Settings.Glow = c.checkBox(x, &y, "Glow", s.Glow)
	res.Settings.Pulse = c.checkBox(x, &y, "Pulse", s.Pulse)
	res.Settings.Sparks = c.checkBox(x, &y, "Sparks", s.Sparks)
	res.Settings.AutoPalette = c.checkBox(x, &y, "Auto palette", s.AutoPalette)

	y += 4
	y = r.DrawSectionHeader(x, y, "Palette")
	res.SelectPalette = c.paletteChips(x, &y, inner, palettes)

	y += 4
	half := float32(inner-padding) / 2
	bh := float32(r.Theme.ButtonHeight)
	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: half, Height: bh}, "Ignite") {
		res.Ignite = true
	}
	if gui.Button(rl.Rectangle{X: float32(x) + half + float32(padding), Y: float32(y), Width: half, Height: bh}, "Next palette") {
		res.NextPalette = true
	}
	y += r.Theme.ButtonHeight + padding

	c.height = y - c.y
	res.Changed = res.Settings != s
	return res
}

// slider draws a labelled slider bar and advances y.
func (c *ControlsPanel) slider(x int32, y *int32, width int32, label, value string, v, lo, hi float32) float32 {
	r := c.renderer
	rl.DrawText(label, x, *y, r.Theme.FontSize, r.Theme.LabelColor)
	valueWidth := rl.MeasureText(value, r.Theme.FontSize)
	rl.DrawText(value, x+width-valueWidth, *y, r.Theme.FontSize, r.Theme.ValueColor)
	*y += r.Theme.LineHeight

	out := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(*y), Width: float32(width), Height: float32(r.Theme.SliderHeight)},
		"", "",
		v, lo, hi,
	)
	*y += r.Theme.SliderHeight + 6
	return out
}

// checkBox draws a labelled toggle and advances y.
func (c *ControlsPanel) checkBox(x int32, y *int32, label string, checked bool) bool {
	size := float32(c.renderer.Theme.LineHeight - 2)
	out := gui.CheckBox(rl.Rectangle{X: float32(x), Y: float32(*y), Width: size, Height: size}, label, checked)
	*y += c.renderer.Theme.LineHeight + 4
	return out
}

// paletteChips draws one row of swatches per palette and returns the clicked
// palette index, or -1.
func (c *ControlsPanel) paletteChips(x int32, y *int32, width int32, palettes *palette.Set) int {
	r := c.renderer
	const chip = int32(12)
	clicked := -1
	mouse := rl.GetMousePosition()
	pressed := rl.IsMouseButtonPressed(rl.MouseButtonLeft)

	for i := 0; i < palettes.Len(); i++ {
		p := palettes.At(i)
		selected := i == palettes.Index()

		nameColor := r.Theme.LabelColor
		if selected {
			nameColor = r.Theme.Selected
		}
		rl.DrawText(fmt.Sprintf("%d %s", i+1, p.Name), x, *y, r.Theme.FontSize, nameColor)

		cx := x + r.Theme.LabelWidth + 10
		for j := 0; j < p.Len(); j++ {
			cr, cg, cb, ca := p.RGBA(j, 1)
			r.DrawSwatch(cx, *y, chip, rl.Color{R: cr, G: cg, B: cb, A: ca}, false)
			cx += chip + 4
		}

		row := rl.Rectangle{X: float32(x), Y: float32(*y), Width: float32(width), Height: float32(r.Theme.LineHeight)}
		if selected {
			rl.DrawRectangleLinesEx(row, 1, r.Theme.PanelBorder)
		}
		if pressed && rl.CheckCollisionPointRec(mouse, row) {
			clicked = i
		}
		*y += r.Theme.LineHeight + 2
	}
	return clicked
}
