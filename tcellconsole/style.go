package tcellconsole

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/textconsole/console"
)

// tcellColor maps named colors onto the first eight palette entries and
// custom colors onto RGB values
func tcellColor(c console.Color) tcell.Color {
	if !c.IsCustom() {
		return tcell.PaletteColor(int(c.Name()))
	}
	rgb := c.RGB()
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// tcellStyle converts a resolved modifier set into a tcell style
func tcellStyle(st console.Style) tcell.Style {
	style := tcell.StyleDefault
	if st.HasFg {
		style = style.Foreground(tcellColor(st.Fg))
	}
	if st.HasBg {
		style = style.Background(tcellColor(st.Bg))
	}
	return style.Bold(st.Bold).Underline(st.Underline)
}

// usesCustom reports whether a style carries a custom color
func usesCustom(st console.Style) bool {
	return (st.HasFg && st.Fg.IsCustom()) || (st.HasBg && st.Bg.IsCustom())
}
