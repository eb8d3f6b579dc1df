package term

import (
	"github.com/gdamore/tcell/v2"
)

// Events is the set of game entry points terminal input drives.
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

// Action is what the loop should do after an event.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionResize
	ActionToggleStatus
)

// Input translates tcell events. It tracks the mouse button so a held button
// triggers once.
type Input struct {
	buttonDown   bool
	paletteCount int
}

// NewInput creates an input handler for paletteCount palettes.
func NewInput(paletteCount int) *Input {
	return &Input{paletteCount: paletteCount}
}

// Handle forwards ev to the game and returns what the loop should do next.
// Resize events are returned rather than forwarded so the renderer can resize first.
func (in *Input) Handle(ev tcell.Event, g Events) Action {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return in.key(ev, g)

	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := ToSim(col, row)
		g.OnPointerMove(x, y)

		down := ev.Buttons()&tcell.Button1 != 0
		if down && !in.buttonDown {
			g.OnTrigger(x, y)
		}
		in.buttonDown = down

	case *tcell.EventFocus:
		if !ev.Focused {
			g.OnPointerLeave()
			in.buttonDown = false
		}

	case *tcell.EventResize:
		return ActionResize
	}
	return ActionNone
}

func (in *Input) key(ev *tcell.EventKey, g Events) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ActionQuit
	case tcell.KeyRune:
	default:
		return ActionNone
	}

	switch r := ev.Rune(); {
	case r == 'q':
		return ActionQuit
	case r == ' ':
		g.OnBurst()
	case r == 'i':
		g.OnIgnite()
	case r == 'p':
		g.OnNextPalette()
	case r == 'k':
		g.TogglePause()
	case r == 'h':
		return ActionToggleStatus
	case r >= '1' && r <= '9':
		if idx := int(r - '1'); idx < in.paletteCount {
			g.OnPaletteChange(idx)
		}
	}
	return ActionNone
}
