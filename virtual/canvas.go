package virtual

import (
	"strings"

	"github.com/lixenwraith/textconsole/console"
)

// Cell is one character cell of the virtual surface
type Cell struct {
	Rune  rune
	Style console.Style
}

// Canvas is an in-memory console.Canvas.
//
// Draws land in a back buffer; Present copies it to the front buffer,
// which models what a user would see. Out-of-bounds draws are dropped.
type Canvas struct {
	console.ModifierStack

	width, height int
	back          []Cell
	front         []Cell

	customColors bool
	cursorX      int
	cursorY      int
	cursorSet    bool
	shownCursorX int
	shownCursorY int
	presents     int
}

// Option configures a Canvas
type Option func(*Canvas)

// WithCustomColors sets the value reported by SupportsCustomColors
func WithCustomColors(supported bool) Option {
	return func(c *Canvas) { c.customColors = supported }
}

// NewCanvas creates a blank canvas of the given size
func NewCanvas(width, height int, opts ...Option) *Canvas {
	c := &Canvas{customColors: true}
	for _, opt := range opts {
		opt(c)
	}
	c.Resize(width, height)
	return c
}

// Resize reallocates both buffers, preserving the overlapping region
func (c *Canvas) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	back := blank(width * height)
	front := blank(width * height)
	for y := 0; y < min(height, c.height); y++ {
		for x := 0; x < min(width, c.width); x++ {
			back[y*width+x] = c.back[y*c.width+x]
			front[y*width+x] = c.front[y*c.width+x]
		}
	}
	c.back, c.front = back, front
	c.width, c.height = width, height
}

func blank(n int) []Cell {
	cells := make([]Cell, n)
	for i := range cells {
		cells[i].Rune = ' '
	}
	return cells
}

func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// DrawChar implements console.Canvas
func (c *Canvas) DrawChar(x, y int, r rune) {
	if !c.inBounds(x, y) {
		return
	}
	c.back[y*c.width+x] = Cell{Rune: r, Style: c.Style()}
}

// Clear implements console.Canvas
func (c *Canvas) Clear() {
	for i := range c.back {
		c.back[i] = Cell{Rune: ' '}
	}
}

// SupportsCustomColors implements console.Canvas
func (c *Canvas) SupportsCustomColors() bool {
	return c.customColors
}

// Present implements console.Canvas
func (c *Canvas) Present() {
	copy(c.front, c.back)
	if c.cursorSet {
		c.shownCursorX, c.shownCursorY = c.cursorX, c.cursorY
	}
	c.presents++
}

// Cursor implements console.Canvas
func (c *Canvas) Cursor(x, y int) {
	c.cursorX, c.cursorY = x, y
	c.cursorSet = true
}

// Width implements console.Canvas
func (c *Canvas) Width() int {
	return c.width
}

// Height implements console.Canvas
func (c *Canvas) Height() int {
	return c.height
}

// CellAt returns the presented cell at (x, y); the zero Cell when out of bounds
func (c *Canvas) CellAt(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{}
	}
	return c.front[y*c.width+x]
}

// PendingAt returns the not yet presented cell at (x, y)
func (c *Canvas) PendingAt(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{}
	}
	return c.back[y*c.width+x]
}

// Row returns the presented runes of row y
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height {
		return ""
	}
	var b strings.Builder
	for _, cell := range c.front[y*c.width : (y+1)*c.width] {
		b.WriteRune(cell.Rune)
	}
	return b.String()
}

// Front returns a copy of the presented buffer, row-major
func (c *Canvas) Front() []Cell {
	out := make([]Cell, len(c.front))
	copy(out, c.front)
	return out
}

// Back returns a copy of the pending buffer, row-major
func (c *Canvas) Back() []Cell {
	out := make([]Cell, len(c.back))
	copy(out, c.back)
	return out
}

// CursorPos returns the cursor position as of the last Present
func (c *Canvas) CursorPos() (x, y int) {
	return c.shownCursorX, c.shownCursorY
}

// Presents returns how many times Present was called
func (c *Canvas) Presents() int {
	return c.presents
}

var _ console.Canvas = (*Canvas)(nil)
