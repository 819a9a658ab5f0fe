package console

import (
	"strings"
	"unicode/utf8"
)

// codeToName maps key codes to canonical config names
var codeToName = map[KeyCode]string{
	CodeF1:  "f1",
	CodeF2:  "f2",
	CodeF3:  "f3",
	CodeF4:  "f4",
	CodeF5:  "f5",
	CodeF6:  "f6",
	CodeF7:  "f7",
	CodeF8:  "f8",
	CodeF9:  "f9",
	CodeF10: "f10",
	CodeF11: "f11",
	CodeF12: "f12",

	CodeInsert:     "insert",
	CodeDelete:     "delete",
	CodeHome:       "home",
	CodeEnd:        "end",
	CodePgUp:       "page_up",
	CodePgDown:     "page_down",
	CodeArrowUp:    "up",
	CodeArrowDown:  "down",
	CodeArrowLeft:  "left",
	CodeArrowRight: "right",

	CodeCtrlTilde: "ctrl_tilde",
	CodeBackspace: "backspace",
	CodeTab:       "tab",
	CodeEnter:     "enter",
	CodeEsc:       "escape",
	CodeSpace:     "space",
}

// nameToCode is the reverse lookup, built from codeToName
var nameToCode map[string]KeyCode

func init() {
	nameToCode = make(map[string]KeyCode, len(codeToName)+4)
	for k, v := range codeToName {
		nameToCode[v] = k
	}
	// Aliases
	nameToCode["esc"] = CodeEsc
	nameToCode["pgup"] = CodePgUp
	nameToCode["pgdown"] = CodePgDown
	nameToCode["return"] = CodeEnter
}

// KeyName returns the canonical config name of k, e.g. "f1" or "ctrl_q"
func KeyName(k SpecialKey) string {
	if k.Code == CodeCtrlPlus {
		return "ctrl_" + string(k.Char)
	}
	return codeToName[k.Code]
}

// KeyByName resolves a config name to a special key.
// Accepts "ctrl_x", "ctrl+x" and "ctrl-x" for chords; case-insensitive.
func KeyByName(name string) (SpecialKey, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range []string{"ctrl_", "ctrl+", "ctrl-"} {
		rest, ok := strings.CutPrefix(name, prefix)
		if !ok {
			continue
		}
		if rest == "~" || rest == "tilde" {
			return KeyCtrlTilde, true
		}
		if utf8.RuneCountInString(rest) == 1 {
			r, _ := utf8.DecodeRuneInString(rest)
			return CtrlPlus(r), true
		}
		return SpecialKey{}, false
	}
	code, ok := nameToCode[name]
	if !ok {
		return SpecialKey{}, false
	}
	return SpecialKey{Code: code}, true
}

// ParseBinding resolves a config binding to the Update it matches.
// A single code point binds that character; anything else must be a key name.
func ParseBinding(s string) (Update, bool) {
	if utf8.RuneCountInString(s) == 1 && s != " " {
		r, _ := utf8.DecodeRuneInString(s)
		return Character(r), true
	}
	k, ok := KeyByName(s)
	if !ok {
		return Update{}, false
	}
	return Special(k), true
}

// String returns a display name, e.g. "F1", "Ctrl+q", "PgUp"
func (k SpecialKey) String() string {
	switch k.Code {
	case CodeCtrlPlus:
		return "Ctrl+" + string(k.Char)
	case CodeCtrlTilde:
		return "Ctrl+~"
	case CodePgUp:
		return "PgUp"
	case CodePgDown:
		return "PgDown"
	case CodeArrowUp:
		return "ArrowUp"
	case CodeArrowDown:
		return "ArrowDown"
	case CodeArrowLeft:
		return "ArrowLeft"
	case CodeArrowRight:
		return "ArrowRight"
	case CodeEsc:
		return "Esc"
	}
	name := codeToName[k.Code]
	if name == "" {
		return "None"
	}
	if name[0] == 'f' && len(name) > 1 && name[1] >= '0' && name[1] <= '9' {
		return "F" + name[1:]
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
