package terminal

import (
	"testing"

	"github.com/muesli/termenv"

	"github.com/lixenwraith/textconsole/console"
)

func TestRGBTo256(t *testing.T) {
	tests := []struct {
		name string
		rgb  console.RGB
		want uint8
	}{
		{"black", console.RGB{R: 0, G: 0, B: 0}, 16},
		{"white", console.RGB{R: 255, G: 255, B: 255}, 231},
		{"pure red", console.RGB{R: 255, G: 0, B: 0}, 196},
		{"pure green", console.RGB{R: 0, G: 255, B: 0}, 46},
		{"pure blue", console.RGB{R: 0, G: 0, B: 255}, 21},
		{"mid gray uses ramp", console.RGB{R: 128, G: 128, B: 128}, 244},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rgbTo256(tt.rgb); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestNearestNamed(t *testing.T) {
	tests := []struct {
		rgb  console.RGB
		want console.ColorName
	}{
		{console.RGB{R: 250, G: 10, B: 10}, console.NameRed},
		{console.RGB{R: 10, G: 10, B: 10}, console.NameBlack},
		{console.RGB{R: 240, G: 240, B: 240}, console.NameWhite},
		{console.RGB{R: 0, G: 200, B: 210}, console.NameCyan},
		{console.RGB{R: 20, G: 20, B: 230}, console.NameBlue},
	}
	for _, tt := range tests {
		if got := nearestNamed(tt.rgb); got != tt.want {
			t.Errorf("nearestNamed(%v): expected %s, got %s", tt.rgb, tt.want, got)
		}
	}
}

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		in   string
		want ColorMode
		ok   bool
	}{
		{"basic", ColorModeBasic, true},
		{"ANSI", ColorModeBasic, true},
		{"256", ColorMode256, true},
		{" truecolor ", ColorModeTrueColor, true},
		{"24bit", ColorModeTrueColor, true},
		{"rainbow", ColorModeBasic, false},
	}
	for _, tt := range tests {
		got, ok := ParseColorMode(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseColorMode(%q): expected (%s, %v), got (%s, %v)", tt.in, tt.want, tt.ok, got, ok)
		}
	}
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name      string
		colorterm string
		term      string
		want      ColorMode
	}{
		{"colorterm truecolor", "truecolor", "xterm", ColorModeTrueColor},
		{"term direct", "", "xterm-direct", ColorModeTrueColor},
		{"term 256color", "", "screen-256color", ColorMode256},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"KITTY_WINDOW_ID", "KONSOLE_VERSION", "ITERM_SESSION_ID", "ALACRITTY_WINDOW_ID", "WEZTERM_PANE"} {
				t.Setenv(k, "")
			}
			t.Setenv("COLORTERM", tt.colorterm)
			t.Setenv("TERM", tt.term)
			if got := DetectColorMode(); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestColorModeFromProfile(t *testing.T) {
	tests := []struct {
		p    termenv.Profile
		want ColorMode
	}{
		{termenv.TrueColor, ColorModeTrueColor},
		{termenv.ANSI256, ColorMode256},
		{termenv.ANSI, ColorModeBasic},
		{termenv.Ascii, ColorModeBasic},
	}
	for _, tt := range tests {
		if got := colorModeFromProfile(tt.p); got != tt.want {
			t.Errorf("Profile %v: expected %s, got %s", tt.p, tt.want, got)
		}
	}
}
