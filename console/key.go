package console

// KeyCode identifies a non-printable key
type KeyCode uint8

const (
	CodeNone KeyCode = iota

	// Function keys
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12

	// Navigation
	CodeInsert
	CodeDelete
	CodeHome
	CodeEnd
	CodePgUp
	CodePgDown
	CodeArrowUp
	CodeArrowDown
	CodeArrowLeft
	CodeArrowRight

	// Control keys
	CodeCtrlTilde
	CodeCtrlPlus // Char holds the chord character
	CodeBackspace
	CodeTab
	CodeEnter
	CodeEsc
	CodeSpace
)

// SpecialKey is a key press that does not map to a printable character.
// Char is set only for CodeCtrlPlus. SpecialKey is comparable.
type SpecialKey struct {
	Code KeyCode
	Char rune
}

var (
	KeyF1  = SpecialKey{Code: CodeF1}
	KeyF2  = SpecialKey{Code: CodeF2}
	KeyF3  = SpecialKey{Code: CodeF3}
	KeyF4  = SpecialKey{Code: CodeF4}
	KeyF5  = SpecialKey{Code: CodeF5}
	KeyF6  = SpecialKey{Code: CodeF6}
	KeyF7  = SpecialKey{Code: CodeF7}
	KeyF8  = SpecialKey{Code: CodeF8}
	KeyF9  = SpecialKey{Code: CodeF9}
	KeyF10 = SpecialKey{Code: CodeF10}
	KeyF11 = SpecialKey{Code: CodeF11}
	KeyF12 = SpecialKey{Code: CodeF12}

	KeyInsert     = SpecialKey{Code: CodeInsert}
	KeyDelete     = SpecialKey{Code: CodeDelete}
	KeyHome       = SpecialKey{Code: CodeHome}
	KeyEnd        = SpecialKey{Code: CodeEnd}
	KeyPgUp       = SpecialKey{Code: CodePgUp}
	KeyPgDown     = SpecialKey{Code: CodePgDown}
	KeyArrowUp    = SpecialKey{Code: CodeArrowUp}
	KeyArrowDown  = SpecialKey{Code: CodeArrowDown}
	KeyArrowLeft  = SpecialKey{Code: CodeArrowLeft}
	KeyArrowRight = SpecialKey{Code: CodeArrowRight}

	KeyCtrlTilde = SpecialKey{Code: CodeCtrlTilde}
	KeyBackspace = SpecialKey{Code: CodeBackspace}
	KeyTab       = SpecialKey{Code: CodeTab}
	KeyEnter     = SpecialKey{Code: CodeEnter}
	KeyEsc       = SpecialKey{Code: CodeEsc}
	KeySpace     = SpecialKey{Code: CodeSpace}
)

// CtrlPlus returns the Ctrl+c chord
func CtrlPlus(c rune) SpecialKey {
	return SpecialKey{Code: CodeCtrlPlus, Char: c}
}

// FunctionKey returns F1..F12 for n in 1..12
func FunctionKey(n int) (SpecialKey, bool) {
	if n < 1 || n > 12 {
		return SpecialKey{}, false
	}
	return SpecialKey{Code: CodeF1 + KeyCode(n-1)}, true
}
