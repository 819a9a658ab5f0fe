package terminal

import (
	"bufio"
	"io"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/textconsole/console"
)

// Cell represents a single terminal cell
type Cell struct {
	Rune  rune
	Style console.Style
}

// blankCell is what Clear leaves behind
var blankCell = Cell{Rune: ' '}

// outputBuffer manages double-buffered terminal output with diffing
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastStyle console.Style
	lastValid bool

	// degraded is called once per custom color rendered without truecolor
	degraded func(console.Color)
}

// newOutputBuffer creates a new output buffer
func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 65536),
		colorMode: colorMode,
	}
}

// resize updates buffer dimensions and forgets what the screen shows
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height
	o.forceFullRedraw()
}

// flush writes cells to the terminal, diffing against the front buffer.
// Cells are row-major: cells[y*width + x].
func (o *outputBuffer) flush(cells []Cell, width, height int) {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}
	if len(cells) < width*height {
		return
	}

	w := o.writer

	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cells[idx] == o.front[idx] {
				x++
				continue
			}

			// Position cursor once for this dirty region
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			// Write contiguous dirty cells while the physical cursor stays in step
			for x < width && o.cursorX == x {
				cidx := rowStart + x
				c := cells[cidx]
				if c == o.front[cidx] {
					break
				}

				o.writeStyle(w, c.Style)

				r := printableRune(c.Rune)
				if r < 0x80 {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}

				o.front[cidx] = c
				o.cursorX += runewidth.RuneWidth(r)
				x++
			}
		}
	}

	w.Write(csiSGR0)
	o.lastValid = false
}

// moveCursor positions and shows the hardware cursor
func (o *outputBuffer) moveCursor(x, y int) {
	x = max(0, min(x, o.width-1))
	y = max(0, min(y, o.height-1))
	writeCursorPos(o.writer, x, y)
	o.writer.Write(csiCursorShow)
	o.cursorX, o.cursorY = x, y
	o.cursorValid = true
}

// forceFullRedraw clears front buffer to force complete redraw
func (o *outputBuffer) forceFullRedraw() {
	for i := range o.front {
		o.front[i] = Cell{Rune: 0}
	}
	o.lastValid = false
	o.cursorValid = false
}

// clearScreen wipes the physical screen; the front buffer then holds blanks
func (o *outputBuffer) clearScreen() {
	w := o.writer
	w.Write(csiSGR0)
	w.Write(csiClear)

	o.lastValid = false
	o.cursorValid = false

	for i := range o.front {
		o.front[i] = blankCell
	}
}

// commit pushes buffered bytes to the backend
func (o *outputBuffer) commit() error {
	return o.writer.Flush()
}
