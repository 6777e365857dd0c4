package render

import (
	"github.com/lixenwraith/prism/core"
)

// Cell is one character cell
type Cell struct {
	Rune rune
	Fg   core.RGB
	Bg   core.RGB
}

// CellCanvas is a character grid compositor; row 0 is the top row
type CellCanvas struct {
	cells  []Cell
	width  int
	height int
}

// NewCellCanvas creates a canvas of the given size
func NewCellCanvas(width, height int) *CellCanvas {
	c := &CellCanvas{}
	c.Resize(width, height)
	return c
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (c *CellCanvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(c.cells) < size {
		c.cells = make([]Cell, size)
	} else {
		c.cells = c.cells[:size]
	}
	c.width = width
	c.height = height
	c.Clear()
}

// Clear resets all cells to blank background using exponential copy
func (c *CellCanvas) Clear() {
	if len(c.cells) == 0 {
		return
	}
	c.cells[0] = Cell{Rune: ' ', Fg: RgbStatusFg, Bg: RgbBackground}
	for filled := 1; filled < len(c.cells); filled *= 2 {
		copy(c.cells[filled:], c.cells[:filled])
	}
}

func (c *CellCanvas) Size() (int, int) {
	return c.width, c.height
}

func (c *CellCanvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Cell returns the cell at x, y; out-of-range reads return a zero cell
func (c *CellCanvas) Cell(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{}
	}
	return c.cells[y*c.width+x]
}

// Set composites a cell; a zero rune keeps the existing rune
func (c *CellCanvas) Set(x, y int, r rune, fg, bg core.RGB, mode BlendMode, alpha float64) {
	if !c.inBounds(x, y) {
		return
	}
	dst := &c.cells[y*c.width+x]
	op := uint8(mode) & 0x0F
	flags := uint8(mode) & 0xF0

	if r != 0 {
		dst.Rune = r
	}
	if flags&flagBg != 0 {
		dst.Bg = apply(op, dst.Bg, bg, alpha)
	}
	if flags&flagFg != 0 {
		dst.Fg = apply(op, dst.Fg, fg, alpha)
	}
}

// Text writes s left to right from x, clipping at the edge
func (c *CellCanvas) Text(x, y int, s string, fg, bg core.RGB) {
	for _, r := range s {
		if x >= c.width {
			return
		}
		c.Set(x, y, r, fg, bg, BlendReplace, 1)
		x++
	}
}

// Line plots a Bresenham line between two cells, endpoints included
func (c *CellCanvas) Line(x0, y0, x1, y1 int, r rune, fg core.RGB, mode BlendMode, alpha float64) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0, r, fg, core.RGB{}, mode, alpha)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
