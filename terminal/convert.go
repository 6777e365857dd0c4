package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/input"
	"github.com/lixenwraith/prism/render"
)

// KeyOf translates a tcell key event; unmapped keys report false
func KeyOf(ev *tcell.EventKey) (input.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return input.Key{Kind: input.KeyRune, Rune: ev.Rune()}, true
	case tcell.KeyEscape:
		return input.Key{Kind: input.KeyEscape}, true
	case tcell.KeyCtrlC:
		return input.Key{Kind: input.KeyCtrlC}, true
	case tcell.KeyDelete:
		return input.Key{Kind: input.KeyDelete}, true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return input.Key{Kind: input.KeyBackspace}, true
	}
	return input.Key{}, false
}

// StyleOf converts a canvas cell's colors to a truecolor style
func StyleOf(c render.Cell) tcell.Style {
	return tcell.StyleDefault.Foreground(colorOf(c.Fg)).Background(colorOf(c.Bg))
}

func colorOf(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
