package tcellconsole

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/textconsole/console"
)

// namedKeys maps tcell keys that have a direct console equivalent
var namedKeys = map[tcell.Key]console.SpecialKey{
	tcell.KeyUp:         console.KeyArrowUp,
	tcell.KeyDown:       console.KeyArrowDown,
	tcell.KeyLeft:       console.KeyArrowLeft,
	tcell.KeyRight:      console.KeyArrowRight,
	tcell.KeyHome:       console.KeyHome,
	tcell.KeyEnd:        console.KeyEnd,
	tcell.KeyPgUp:       console.KeyPgUp,
	tcell.KeyPgDn:       console.KeyPgDown,
	tcell.KeyInsert:     console.KeyInsert,
	tcell.KeyDelete:     console.KeyDelete,
	tcell.KeyBackspace:  console.KeyBackspace,
	tcell.KeyBackspace2: console.KeyBackspace,
	tcell.KeyTab:        console.KeyTab,
	tcell.KeyBacktab:    console.KeyTab,
	tcell.KeyEnter:      console.KeyEnter,
	tcell.KeyEscape:     console.KeyEsc,
	tcell.KeyNUL:        console.KeyCtrlTilde,
}

// translateEvent converts a tcell event into an update.
// Events with no console meaning (mouse, focus, paste, interrupts) return false.
func translateEvent(ev tcell.Event) (console.Update, bool) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return console.Resize(w, h), true

	case *tcell.EventKey:
		return translateKey(ev.Key(), ev.Rune(), ev.Modifiers())
	}
	return console.Update{}, false
}

// translateKey maps a key press; Alt and Shift are not reported
func translateKey(key tcell.Key, r rune, mod tcell.ModMask) (console.Update, bool) {
	if key == tcell.KeyRune {
		switch {
		case mod&tcell.ModCtrl != 0 && r == ' ':
			return console.Special(console.KeyCtrlTilde), true
		case mod&tcell.ModCtrl != 0:
			return console.Special(console.CtrlPlus(unicode.ToLower(r))), true
		case r == ' ':
			return console.Special(console.KeySpace), true
		}
		return console.Character(r), true
	}

	if k, ok := namedKeys[key]; ok {
		return console.Special(k), true
	}

	if key >= tcell.KeyF1 && key <= tcell.KeyF12 {
		k, _ := console.FunctionKey(int(key-tcell.KeyF1) + 1)
		return console.Special(k), true
	}

	// KeyCtrlH, KeyCtrlI and KeyCtrlM share values with Backspace, Tab and
	// Enter, which the table above already claimed
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return console.Special(console.CtrlPlus(rune('a' + key - tcell.KeyCtrlA))), true
	}

	switch key {
	case tcell.KeyCtrlBackslash:
		return console.Special(console.CtrlPlus('\\')), true
	case tcell.KeyCtrlRightSq:
		return console.Special(console.CtrlPlus(']')), true
	case tcell.KeyCtrlCarat:
		return console.Special(console.CtrlPlus('^')), true
	case tcell.KeyCtrlUnderscore:
		return console.Special(console.CtrlPlus('_')), true
	}
	return console.Update{}, false
}
