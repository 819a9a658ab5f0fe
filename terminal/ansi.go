package terminal

import (
	"bufio"

	"github.com/lixenwraith/textconsole/console"
)

// Pre-allocated ANSI sequence fragments (avoid allocations during render)
var (
	// CSI sequences
	csi      = []byte("\x1b[")
	csiClear = []byte("\x1b[2J\x1b[H")
	csiRIS   = []byte("\x1bc") // Reset to Initial State (emergency)
	csiSGR0  = []byte("\x1b[0m")

	// Cursor control
	csiCursorHide = []byte("\x1b[?25l")
	csiCursorShow = []byte("\x1b[?25h")
	csiCursorPos  = []byte("\x1b[") // followed by row;colH

	// Screen modes
	csiAltScreenEnter = []byte("\x1b[?1049h")
	csiAltScreenExit  = []byte("\x1b[?1049l")
	// DECAWM: Auto-Wrap Mode
	// ?7l disables wrapping (cursor sticks at right edge), preventing scroll when writing to bottom-right corner
	csiAutoWrapOn  = []byte("\x1b[?7h")
	csiAutoWrapOff = []byte("\x1b[?7l")

	// Mouse reporting, only ever switched off (emergency cleanup after foreign programs)
	csiMouseOff = []byte("\x1b[?1003l\x1b[?1002l\x1b[?1000l\x1b[?1006l")
)

// SGR parameters
const (
	sgrBold      = 1
	sgrUnderline = 4
	sgrFgBase    = 30 // 30-37 basic foreground
	sgrFgDefault = 39
	sgrBgBase    = 40 // 40-47 basic background
	sgrBgDefault = 49
)

// writeInt writes an integer without allocation
// Optimized for terminal values (0-255 common, 0-999 typical max)
func writeInt(w *bufio.Writer, n int) {
	if n < 0 {
		n = 0
	}
	if n < 10 {
		w.WriteByte(byte(n) + '0')
		return
	}
	if n < 100 {
		w.WriteByte(byte(n/10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	if n < 1000 {
		w.WriteByte(byte(n/100) + '0')
		w.WriteByte(byte(n/10%10) + '0')
		w.WriteByte(byte(n%10) + '0')
		return
	}
	// Fallback for >999 (rare)
	var buf [20]byte
	i := len(buf) - 1
	for n > 0 {
		buf[i] = byte(n%10) + '0'
		n /= 10
		i--
	}
	w.Write(buf[i+1:])
}

// writeCursorPos writes cursor positioning sequence (0-indexed input)
func writeCursorPos(w *bufio.Writer, x, y int) {
	w.Write(csiCursorPos)
	writeInt(w, y+1)
	w.WriteByte(';')
	writeInt(w, x+1)
	w.WriteByte('H')
}

// writeCursorForward writes cursor forward N positions
func writeCursorForward(w *bufio.Writer, n int) {
	if n <= 0 {
		return
	}
	if n == 1 {
		w.Write([]byte("\x1b[C"))
		return
	}
	w.Write(csi)
	writeInt(w, n)
	w.WriteByte('C')
}

// printableRune maps controls (C0, DEL, C1) and NUL to a space so a cell
// can never move the cursor or start an escape sequence
func printableRune(r rune) rune {
	if r < 0x20 || (r >= 0x7f && r < 0xa0) {
		return ' '
	}
	return r
}

// writeStyle emits a single combined SGR sequence when style changes
func (o *outputBuffer) writeStyle(w *bufio.Writer, s console.Style) {
	if o.lastValid && s == o.lastStyle {
		return
	}

	w.Write(csi)
	w.WriteByte('0')
	if s.Bold {
		w.WriteByte(';')
		writeInt(w, sgrBold)
	}
	if s.Underline {
		w.WriteByte(';')
		writeInt(w, sgrUnderline)
	}
	w.WriteByte(';')
	o.writeColor(w, s.Fg, s.HasFg, sgrFgBase, sgrFgDefault)
	w.WriteByte(';')
	o.writeColor(w, s.Bg, s.HasBg, sgrBgBase, sgrBgDefault)
	w.WriteByte('m')

	o.lastStyle = s
	o.lastValid = true
}

// writeColor writes color parameters (no CSI prefix, no 'm' suffix).
// base is 30 for foreground, 40 for background.
func (o *outputBuffer) writeColor(w *bufio.Writer, c console.Color, set bool, base, def int) {
	if !set {
		writeInt(w, def)
		return
	}
	if !c.IsCustom() {
		writeInt(w, base+int(c.Name()))
		return
	}

	rgb := c.RGB()
	switch o.colorMode {
	case ColorModeTrueColor:
		// 38;2;R;G;B or 48;2;R;G;B
		writeInt(w, base+8)
		w.WriteString(";2;")
		writeInt(w, int(rgb.R))
		w.WriteByte(';')
		writeInt(w, int(rgb.G))
		w.WriteByte(';')
		writeInt(w, int(rgb.B))
	case ColorMode256:
		if o.degraded != nil {
			o.degraded(c)
		}
		writeInt(w, base+8)
		w.WriteString(";5;")
		writeInt(w, int(rgbTo256(rgb)))
	default:
		if o.degraded != nil {
			o.degraded(c)
		}
		writeInt(w, base+int(nearestNamed(rgb)))
	}
}
