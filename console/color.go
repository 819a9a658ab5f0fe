package console

import "fmt"

// ColorName identifies one of the eight basic console colors
type ColorName uint8

const (
	NameBlack ColorName = iota
	NameRed
	NameGreen
	NameYellow
	NameBlue
	NameMagenta
	NameCyan
	NameWhite
)

var colorNames = [...]string{"Black", "Red", "Green", "Yellow", "Blue", "Magenta", "Cyan", "White"}

// String returns the color name
func (n ColorName) String() string {
	if int(n) < len(colorNames) {
		return colorNames[n]
	}
	return fmt.Sprintf("ColorName(%d)", uint8(n))
}

// RGB represents a 24-bit color, channels 0-255
type RGB struct {
	R, G, B uint8
}

// palette holds the xterm default values of the basic colors
var palette = [...]RGB{
	{0, 0, 0},
	{205, 0, 0},
	{0, 205, 0},
	{205, 205, 0},
	{0, 0, 238},
	{205, 0, 205},
	{0, 205, 205},
	{229, 229, 229},
}

// Color is either one of the eight named colors or a custom RGB value.
// Custom colors are only rendered faithfully by canvases whose
// SupportsCustomColors reports true.
//
// Color is comparable; == and map hashing are structural.
type Color struct {
	custom bool
	name   ColorName
	rgb    RGB
}

// Named colors
var (
	Black   = Color{name: NameBlack}
	Red     = Color{name: NameRed}
	Green   = Color{name: NameGreen}
	Yellow  = Color{name: NameYellow}
	Blue    = Color{name: NameBlue}
	Magenta = Color{name: NameMagenta}
	Cyan    = Color{name: NameCyan}
	White   = Color{name: NameWhite}
)

// Named returns the basic color for n
func Named(n ColorName) Color {
	return Color{name: n}
}

// Custom returns a custom RGB color
func Custom(r, g, b uint8) Color {
	return Color{custom: true, rgb: RGB{r, g, b}}
}

// IsCustom reports whether c was built with Custom
func (c Color) IsCustom() bool {
	return c.custom
}

// Name returns the basic color name; only meaningful when !IsCustom()
func (c Color) Name() ColorName {
	return c.name
}

// RGB returns the custom channels, or the default palette value of a named color
func (c Color) RGB() RGB {
	if c.custom {
		return c.rgb
	}
	if int(c.name) < len(palette) {
		return palette[c.name]
	}
	return RGB{}
}

func (c Color) String() string {
	if c.custom {
		return fmt.Sprintf("Custom(%d, %d, %d)", c.rgb.R, c.rgb.G, c.rgb.B)
	}
	return c.name.String()
}
