package tcellconsole

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/textconsole/console"
)

func newSimScreen(t *testing.T, opts ...Option) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s := New(sim, opts...)
	require.NoError(t, s.Init())
	sim.SetSize(20, 5)
	t.Cleanup(s.Fini)
	return s, sim
}

func cellAt(t *testing.T, sim tcell.SimulationScreen, x, y int) tcell.SimCell {
	t.Helper()
	cells, w, _ := sim.GetContents()
	return cells[y*w+x]
}

// nextNonResize skips the resize tcell posts on startup
func nextNonResize(t *testing.T, s *Screen) console.Update {
	t.Helper()
	for {
		u, err := s.Next()
		require.NoError(t, err)
		if u.Kind != console.UpdateResize {
			return u
		}
	}
}

func TestScreenDrawAndPresent(t *testing.T) {
	s, sim := newSimScreen(t)

	assert.Equal(t, 20, s.Width())
	assert.Equal(t, 5, s.Height())

	err := console.WithState(s, func(c console.Canvas) error {
		c.Set(console.Bold)
		c.Set(console.TextColor(console.Red))
		console.Draw(c, 1, 1, "hi")
		return nil
	})
	require.NoError(t, err)
	console.Draw(s, 3, 1, "!")
	s.Present()

	h := cellAt(t, sim, 1, 1)
	require.NotEmpty(t, h.Runes)
	assert.Equal(t, 'h', h.Runes[0])
	fg, _, attrs := h.Style.Decompose()
	assert.Equal(t, tcell.PaletteColor(int(console.NameRed)), fg)
	assert.NotZero(t, attrs&tcell.AttrBold)

	bang := cellAt(t, sim, 3, 1)
	require.NotEmpty(t, bang.Runes)
	assert.Equal(t, '!', bang.Runes[0])
	_, _, attrs = bang.Style.Decompose()
	assert.Zero(t, attrs&tcell.AttrBold, "bold must not leak out of the scope")
	assert.Equal(t, 1, s.Depth())
}

func TestScreenDrawClips(t *testing.T) {
	s, sim := newSimScreen(t)

	console.Draw(s, 18, 0, "abcd")
	s.DrawChar(-1, 0, 'x')
	s.Present()

	assert.Equal(t, 'a', cellAt(t, sim, 18, 0).Runes[0])
	assert.Equal(t, 'b', cellAt(t, sim, 19, 0).Runes[0])
	first := cellAt(t, sim, 0, 1)
	if len(first.Runes) > 0 {
		assert.NotEqual(t, 'c', first.Runes[0], "text must not wrap")
	}
}

func TestScreenClear(t *testing.T) {
	s, sim := newSimScreen(t)

	console.Draw(s, 0, 0, "x")
	s.Present()
	s.Clear()
	s.Present()

	c := cellAt(t, sim, 0, 0)
	if len(c.Runes) > 0 {
		assert.Equal(t, ' ', c.Runes[0])
	}
}

func TestScreenCustomColorSupport(t *testing.T) {
	var logBuf bytes.Buffer
	s, sim := newSimScreen(t, WithLogger(slog.New(slog.NewTextHandler(&logBuf, nil))))

	assert.Equal(t, sim.Colors() >= 1<<24, s.SupportsCustomColors())

	s.Set(console.TextColor(console.Custom(10, 20, 30)))
	console.Draw(s, 0, 0, "ab")
	s.Present()

	if s.SupportsCustomColors() {
		assert.NoError(t, console.CheckColor(s, console.TextColor(console.Custom(1, 2, 3))))
	} else {
		assert.ErrorIs(t, console.CheckColor(s, console.TextColor(console.Custom(1, 2, 3))), console.ErrUnsupportedColor)
		assert.Equal(t, 1, strings.Count(logBuf.String(), "custom color approximated"))
	}

	fg, _, _ := cellAt(t, sim, 0, 0).Style.Decompose()
	assert.Equal(t, tcell.NewRGBColor(10, 20, 30), fg)
}

func TestScreenCursor(t *testing.T) {
	s, sim := newSimScreen(t)

	s.Cursor(4, 2)
	s.Present()
	x, y, visible := sim.GetCursor()
	assert.Equal(t, 4, x)
	assert.Equal(t, 2, y)
	assert.True(t, visible)

	s.HideCursor()
	s.Present()
	_, _, visible = sim.GetCursor()
	assert.False(t, visible)
}

func TestScreenNext(t *testing.T) {
	s, sim := newSimScreen(t)

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	sim.InjectKey(tcell.KeyF1, 0, tcell.ModNone)
	sim.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)

	assert.Equal(t, console.Character('q'), nextNonResize(t, s))
	assert.Equal(t, console.Special(console.KeyF1), nextNonResize(t, s))
	assert.Equal(t, console.Special(console.CtrlPlus('c')), nextNonResize(t, s))

	s.Fini()
	var err error
	for i := 0; i < 10 && err == nil; i++ {
		_, err = s.Next()
	}
	assert.ErrorIs(t, err, console.ErrClosed)
}

func TestScreenNextBeforeInit(t *testing.T) {
	s := New(tcell.NewSimulationScreen("UTF-8"))
	_, err := s.Next()
	assert.True(t, errors.Is(err, ErrNotInitialized))
}
