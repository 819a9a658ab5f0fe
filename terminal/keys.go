package terminal

import "github.com/lixenwraith/textconsole/console"

// Known CSI sequences (ESC [ ...), modifier parameters already stripped
var csiMap = map[string]console.SpecialKey{
	// Arrow keys
	"A": console.KeyArrowUp,
	"B": console.KeyArrowDown,
	"C": console.KeyArrowRight,
	"D": console.KeyArrowLeft,
	"Z": console.KeyTab, // Shift+Tab, no distinct key in the taxonomy

	// Navigation
	"H":  console.KeyHome,
	"F":  console.KeyEnd,
	"1~": console.KeyHome,
	"7~": console.KeyHome,
	"4~": console.KeyEnd,
	"8~": console.KeyEnd,
	"2~": console.KeyInsert,
	"3~": console.KeyDelete,
	"5~": console.KeyPgUp,
	"6~": console.KeyPgDown,

	// Function keys (xterm)
	"11~": console.KeyF1,
	"12~": console.KeyF2,
	"13~": console.KeyF3,
	"14~": console.KeyF4,
	"15~": console.KeyF5,
	"17~": console.KeyF6,
	"18~": console.KeyF7,
	"19~": console.KeyF8,
	"20~": console.KeyF9,
	"21~": console.KeyF10,
	"23~": console.KeyF11,
	"24~": console.KeyF12,

	// Modified F1-F4 arrive as CSI 1;mod P..S
	"P": console.KeyF1,
	"Q": console.KeyF2,
	"R": console.KeyF3,
	"S": console.KeyF4,

	// Function keys (linux console)
	"[A": console.KeyF1,
	"[B": console.KeyF2,
	"[C": console.KeyF3,
	"[D": console.KeyF4,
	"[E": console.KeyF5,
}

// SS3 sequences (ESC O ...)
var ss3Map = map[byte]console.SpecialKey{
	'A': console.KeyArrowUp,
	'B': console.KeyArrowDown,
	'C': console.KeyArrowRight,
	'D': console.KeyArrowLeft,
	'H': console.KeyHome,
	'F': console.KeyEnd,
	'P': console.KeyF1,
	'Q': console.KeyF2,
	'R': console.KeyF3,
	'S': console.KeyF4,
	'M': console.KeyEnter, // keypad enter in application mode
}

// stripCSIModifier drops the xterm modifier parameter:
// "1;5A" -> "A", "3;2~" -> "3~", "15;3~" -> "15~"
func stripCSIModifier(seq []byte) []byte {
	semi := -1
	for i, b := range seq {
		if b == ';' {
			semi = i
			break
		}
	}
	if semi < 0 {
		return seq
	}
	final := seq[len(seq)-1]
	if final == '~' {
		out := make([]byte, 0, semi+1)
		out = append(out, seq[:semi]...)
		return append(out, '~')
	}
	return seq[len(seq)-1:]
}

// lookupCSI resolves a CSI parameter/final byte run
// The string([]byte) conversion inline in map access does not allocate
func lookupCSI(seq []byte) (console.SpecialKey, bool) {
	k, ok := csiMap[string(stripCSIModifier(seq))]
	return k, ok
}

// controlKey maps C0 control bytes to updates
func controlKey(b byte) console.Update {
	switch b {
	case 0x00: // Ctrl+@, sent for Ctrl+~ and Ctrl+Space
		return console.Special(console.KeyCtrlTilde)
	case 0x08: // Ctrl+H or Backspace
		return console.Special(console.KeyBackspace)
	case 0x09:
		return console.Special(console.KeyTab)
	case 0x0a, 0x0d: // LF, CR
		return console.Special(console.KeyEnter)
	case 0x1b:
		return console.Special(console.KeyEsc)
	case 0x1c:
		return console.Special(console.CtrlPlus('\\'))
	case 0x1d:
		return console.Special(console.CtrlPlus(']'))
	case 0x1e:
		return console.Special(console.CtrlPlus('^'))
	case 0x1f:
		return console.Special(console.CtrlPlus('_'))
	}
	// Ctrl+A = 0x01 .. Ctrl+Z = 0x1A
	return console.Special(console.CtrlPlus(rune('a' + b - 1)))
}
