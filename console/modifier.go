package console

import "fmt"

// ModifierKind distinguishes the modifier variants
type ModifierKind uint8

const (
	KindBold ModifierKind = iota
	KindUnderline
	KindTextColor
	KindBackgroundColor
)

// Modifier is a style attribute applied to characters drawn after it is set.
// Modifier is comparable and usable as a map key.
type Modifier struct {
	kind  ModifierKind
	color Color
}

var (
	Bold      = Modifier{kind: KindBold}
	Underline = Modifier{kind: KindUnderline}
)

// TextColor sets the foreground color
func TextColor(c Color) Modifier {
	return Modifier{kind: KindTextColor, color: c}
}

// BackgroundColor sets the background color
func BackgroundColor(c Color) Modifier {
	return Modifier{kind: KindBackgroundColor, color: c}
}

// Kind returns the modifier variant
func (m Modifier) Kind() ModifierKind {
	return m.kind
}

// Color returns the color payload and whether the modifier carries one
func (m Modifier) Color() (Color, bool) {
	switch m.kind {
	case KindTextColor, KindBackgroundColor:
		return m.color, true
	}
	return Color{}, false
}

// usesCustomColor reports whether m carries a custom color
func (m Modifier) usesCustomColor() bool {
	c, ok := m.Color()
	return ok && c.IsCustom()
}

func (m Modifier) String() string {
	switch m.kind {
	case KindBold:
		return "Bold"
	case KindUnderline:
		return "Underline"
	case KindTextColor:
		return "TextColor(" + m.color.String() + ")"
	case KindBackgroundColor:
		return "BackgroundColor(" + m.color.String() + ")"
	}
	return fmt.Sprintf("Modifier(%d)", uint8(m.kind))
}

// Style is the resolved appearance of an active modifier set
type Style struct {
	Bold      bool
	Underline bool
	Fg        Color
	Bg        Color
	HasFg     bool // Fg is meaningful; otherwise the backend default applies
	HasBg     bool
}

// Resolve folds modifiers in activation order; later colors override earlier ones
func Resolve(mods []Modifier) Style {
	var s Style
	for _, m := range mods {
		switch m.kind {
		case KindBold:
			s.Bold = true
		case KindUnderline:
			s.Underline = true
		case KindTextColor:
			s.Fg, s.HasFg = m.color, true
		case KindBackgroundColor:
			s.Bg, s.HasBg = m.color, true
		}
	}
	return s
}
