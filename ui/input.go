package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// doubleClickWindow is the max gap in seconds between two clicks of a double click.
const doubleClickWindow = 0.3

// Events is the set of game entry points the input handler drives.
type Events interface {
	OnPointerMove(x, y float64)
	OnPointerLeave()
	OnTrigger(x, y float64)
	OnBurst()
	OnIgnite()
	OnNextPalette()
	OnPaletteChange(index int)
	OnResize(w, h float64)
	TogglePause()
}

// Input maps raylib mouse and keyboard state to game events.
type Input struct {
	lastClick   float64
	pointerSeen bool
}

// NewInput creates an input handler.
func NewInput() *Input {
	return &Input{lastClick: -1}
}

// Poll reads this frame's input and forwards it to ev. Clicks inside blocked
// (the controls panel) are left to the panel. Number keys past paletteCount are ignored.
func (in *Input) Poll(ev Events, blocked rl.Rectangle, paletteCount int) {
	if rl.IsWindowResized() {
		ev.OnResize(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))
	}

	mouse := rl.GetMousePosition()
	overPanel := rl.CheckCollisionPointRec(mouse, blocked)

	if rl.IsCursorOnScreen() && !overPanel {
		if delta := rl.GetMouseDelta(); delta.X != 0 || delta.Y != 0 || !in.pointerSeen {
			ev.OnPointerMove(float64(mouse.X), float64(mouse.Y))
			in.pointerSeen = true
		}
	} else if in.pointerSeen {
		ev.OnPointerLeave()
		in.pointerSeen = false
	}

	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overPanel {
		now := rl.GetTime()
		if in.lastClick >= 0 && now-in.lastClick <= doubleClickWindow {
			ev.OnNextPalette()
			in.lastClick = -1
		} else {
			ev.OnTrigger(float64(mouse.X), float64(mouse.Y))
			in.lastClick = now
		}
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		ev.OnBurst()
	}
	if rl.IsKeyPressed(rl.KeyI) {
		ev.OnIgnite()
	}
	if rl.IsKeyPressed(rl.KeyP) {
		ev.OnNextPalette()
	}
	if rl.IsKeyPressed(rl.KeyPause) || rl.IsKeyPressed(rl.KeyK) {
		ev.TogglePause()
	}
	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix, rl.KeySeven, rl.KeyEight, rl.KeyNine} {
		if i < paletteCount && rl.IsKeyPressed(key) {
			ev.OnPaletteChange(i)
		}
	}

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
}

// Legend is the key legend shown at the bottom of the screen.
const Legend = "Click: ripple | Double-click/P: next palette | Space: burst | I: ignite | 1-9: palette | K: pause | Tab: controls | H: HUD | F3: perf"
