package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/prism/core"
	"github.com/lixenwraith/prism/input"
	"github.com/lixenwraith/prism/parameter"
	"github.com/lixenwraith/prism/render"
	"github.com/lixenwraith/prism/sandbox"
)

const eventBuffer = 100

// Screen owns a tcell screen and the pointer state decoded from its events
type Screen struct {
	screen   tcell.Screen
	canvas   *render.CellCanvas
	renderer render.CellRenderer

	events   chan tcell.Event
	stop     chan struct{}
	finiOnce sync.Once

	// Last mouse report, in cells
	col, row int
	hasMouse bool
	down     [2]bool // Held per the last report, by input.Button

	// Presses not yet seen by Pointer; a click shorter than a frame still lands
	latched            [2]bool
	pressCol, pressRow int
}

// New wraps s; call Init before use
func New(s tcell.Screen) *Screen {
	return &Screen{
		screen:   s,
		canvas:   render.NewCellCanvas(0, 0),
		renderer: render.CellRenderer{Aspect: parameter.TerminalCellAspect},
		events:   make(chan tcell.Event, eventBuffer),
		stop:     make(chan struct{}),
	}
}

// Open creates a Screen on the controlling terminal
func Open() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create screen")
	}
	return New(s), nil
}

// Init enters raw mode, enables mouse reporting and starts event polling
func (s *Screen) Init() error {
	if err := s.screen.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	s.screen.EnableMouse(tcell.MouseButtonEvents | tcell.MouseDragEvents)
	s.screen.HideCursor()
	s.canvas.Resize(s.screen.Size())

	core.Go(func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case s.events <- ev:
			case <-s.stop:
				return
			}
		}
	})
	return nil
}

// Fini restores the terminal; safe to call more than once
func (s *Screen) Fini() {
	s.finiOnce.Do(func() {
		close(s.stop)
		s.screen.Fini()
	})
}

// Events delivers polled tcell events
func (s *Screen) Events() <-chan tcell.Event {
	return s.events
}

// Handle applies ev to sb and reports whether the user asked to quit
func (s *Screen) Handle(sb *sandbox.Sandbox, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		k, ok := KeyOf(ev)
		if !ok {
			return false
		}
		return sb.Key(k)
	case *tcell.EventMouse:
		s.mouse(ev)
	case *tcell.EventResize:
		s.canvas.Resize(ev.Size())
		if s.screen != nil {
			s.screen.Sync()
		}
	}
	return false
}

func (s *Screen) mouse(ev *tcell.EventMouse) {
	col, row := ev.Position()
	btn := ev.Buttons()
	var now [2]bool
	now[input.ButtonLeft] = btn&tcell.Button1 != 0
	now[input.ButtonRight] = btn&tcell.Button2 != 0

	for b := range now {
		if now[b] && !s.down[b] && !s.latched[b] {
			s.latched[b] = true
			s.pressCol, s.pressRow = col, row
		}
	}
	s.down = now
	s.col, s.row = col, row
	s.hasMouse = true
}

// Pointer builds the frame pointer from mouse reports since the last call
// A press released before this call is reported held once, at the press cell
// The status row belongs to the UI and captures the pointer
func (s *Screen) Pointer(sb *sandbox.Sandbox) input.Pointer {
	col, row := s.col, s.row
	var down [2]bool
	for b := range down {
		down[b] = s.down[b] || s.latched[b]
		if s.latched[b] && !s.down[b] {
			col, row = s.pressCol, s.pressRow
		}
		s.latched[b] = false
	}

	proj := s.renderer.Projector(s.canvas, sb.Ctx.Camera)
	g := core.Point{float32(col) + 0.5, float32(row) + 0.5}
	_, h := s.canvas.Size()
	onStatus := s.hasMouse && row >= h-1
	return sb.Pointer(proj.GridToScreen(g), proj.Viewport(), down[input.ButtonLeft], down[input.ButtonRight], onStatus)
}

// Draw renders f and shows it
func (s *Screen) Draw(f sandbox.Frame) {
	s.renderer.Draw(s.canvas, f)
	w, h := s.canvas.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := s.canvas.Cell(x, y)
			r := c.Rune
			if r == 0 {
				r = ' '
			}
			s.screen.SetContent(x, y, r, nil, StyleOf(c))
		}
	}
	s.screen.Show()
}

// Canvas exposes the backing cell canvas
func (s *Screen) Canvas() *render.CellCanvas {
	return s.canvas
}
