package terminal

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/textconsole/console"
)

// fakeBackend is an in-memory Backend driven by the test
type fakeBackend struct {
	mu      sync.Mutex
	out     bytes.Buffer
	width   int
	height  int
	reads   chan []byte
	readErr error
	resize  func(w, h int)
	inits   int
	finis   int
}

func newFakeBackend(w, h int) *fakeBackend {
	return &fakeBackend{width: w, height: h, reads: make(chan []byte)}
}

func (b *fakeBackend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.inits++
	return nil
}

func (b *fakeBackend) Fini() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.finis++
}

func (b *fakeBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *fakeBackend) setSize(w, h int) {
	b.mu.Lock()
	b.width, b.height = w, h
	b.mu.Unlock()
}

func (b *fakeBackend) Write(p []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out.Write(p)
	return nil
}

func (b *fakeBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	if b.readErr != nil {
		return nil, b.readErr
	}
	select {
	case d, ok := <-b.reads:
		if !ok {
			return nil, io.EOF
		}
		return d, nil
	case <-stopCh:
		return nil, nil
	case <-time.After(5 * time.Millisecond):
		return nil, nil
	}
}

func (b *fakeBackend) SetResizeHandler(handler func(w, h int)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.resize = handler
}

// output returns and clears everything written so far
func (b *fakeBackend) output() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.out.String()
	b.out.Reset()
	return s
}

func newTestTerminal(t *testing.T, mode ColorMode, opts ...Option) (*Terminal, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend(20, 5)
	term := New(fb, append([]Option{WithColorMode(mode)}, opts...)...)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Fini)
	fb.output()
	return term, fb
}

// TestInputOrdering checks resize and key updates arrive in the order they happened
func TestInputOrdering(t *testing.T) {
	term, fb := newTestTerminal(t, ColorModeTrueColor)

	fb.mu.Lock()
	handler := fb.resize
	fb.mu.Unlock()
	if handler == nil {
		t.Fatal("Expected resize handler to be registered")
	}

	handler(80, 24)
	fb.reads <- []byte("q")
	fb.reads <- []byte("\x1bOP")

	want := []console.Update{
		console.Resize(80, 24),
		console.Character('q'),
		console.Special(console.KeyF1),
	}
	for i, w := range want {
		got, err := term.Next()
		if err != nil {
			t.Fatalf("Next %d: unexpected error %v", i, err)
		}
		if got != w {
			t.Errorf("Next %d: expected %v, got %v", i, w, got)
		}
	}

	close(fb.reads)
	if _, err := term.Next(); !errors.Is(err, console.ErrClosed) {
		t.Errorf("Expected ErrClosed after input ended, got %v", err)
	}
}

func TestInputReadError(t *testing.T) {
	fb := newFakeBackend(10, 3)
	boom := errors.New("device gone")
	fb.readErr = boom

	term := New(fb, WithColorMode(ColorModeBasic))
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer term.Fini()

	_, err := term.Next()
	if !errors.Is(err, boom) {
		t.Errorf("Expected wrapped read error, got %v", err)
	}
}

func TestNextBeforeInit(t *testing.T) {
	term := New(newFakeBackend(10, 3), WithColorMode(ColorModeBasic))
	if _, err := term.Next(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Expected ErrNotInitialized, got %v", err)
	}
}

func TestFiniIdempotent(t *testing.T) {
	fb := newFakeBackend(10, 3)
	term := New(fb, WithColorMode(ColorModeBasic))

	// Fini before Init does nothing
	term.Fini()
	if fb.finis != 0 {
		t.Fatalf("Expected no backend Fini before Init, got %d", fb.finis)
	}

	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	term.Fini()
	term.Fini()
	if fb.finis != 1 {
		t.Errorf("Expected exactly one backend Fini, got %d", fb.finis)
	}

	if _, err := term.Next(); !errors.Is(err, console.ErrClosed) {
		t.Errorf("Expected ErrClosed after Fini, got %v", err)
	}
}

func TestPresentWithoutDraws(t *testing.T) {
	term, fb := newTestTerminal(t, ColorModeTrueColor)

	term.Present()
	if out := fb.output(); out != "\x1b[0m" {
		t.Errorf("Expected only SGR reset, got %q", out)
	}
}

func TestPresentBeforeInit(t *testing.T) {
	fb := newFakeBackend(10, 3)
	term := New(fb, WithColorMode(ColorModeBasic))

	console.Draw(term, 0, 0, "x")
	term.Present()
	if out := fb.output(); out != "" {
		t.Errorf("Expected no output before Init, got %q", out)
	}
}

func TestDrawMatchesDrawChar(t *testing.T) {
	a, _ := newTestTerminal(t, ColorModeTrueColor)
	b, _ := newTestTerminal(t, ColorModeTrueColor)

	a.Set(console.Underline)
	b.Set(console.Underline)

	console.Draw(a, 2, 1, "héllo")
	for i, c := range []rune("héllo") {
		b.DrawChar(2+i, 1, c)
	}

	for i := range a.back {
		if a.back[i] != b.back[i] {
			t.Fatalf("Cell %d differs: %+v vs %+v", i, a.back[i], b.back[i])
		}
	}
}

func TestDrawClipsOutsideSurface(t *testing.T) {
	term, _ := newTestTerminal(t, ColorModeTrueColor)

	console.Draw(term, 18, 0, "abcd")
	term.DrawChar(-1, 0, 'x')
	term.DrawChar(0, 5, 'y')

	if got := term.back[18].Rune; got != 'a' {
		t.Errorf("Expected 'a' at column 18, got %q", got)
	}
	if got := term.back[19].Rune; got != 'b' {
		t.Errorf("Expected 'b' at column 19, got %q", got)
	}
	if got := term.back[20].Rune; got != ' ' {
		t.Errorf("Expected clipped text not to wrap, got %q", got)
	}
}

func TestPresentStyles(t *testing.T) {
	tests := []struct {
		name string
		mode ColorMode
		mods []console.Modifier
		want string
	}{
		{
			name: "bold custom truecolor",
			mode: ColorModeTrueColor,
			mods: []console.Modifier{console.Bold, console.TextColor(console.Custom(1, 2, 3))},
			want: "\x1b[0;1;38;2;1;2;3;49mhi",
		},
		{
			name: "named colors",
			mode: ColorModeTrueColor,
			mods: []console.Modifier{console.TextColor(console.Red), console.BackgroundColor(console.Blue)},
			want: "\x1b[0;31;44mhi",
		},
		{
			name: "underline",
			mode: ColorModeBasic,
			mods: []console.Modifier{console.Underline},
			want: "\x1b[0;4;39;49mhi",
		},
		{
			name: "custom in 256 mode",
			mode: ColorMode256,
			mods: []console.Modifier{console.BackgroundColor(console.Custom(255, 0, 0))},
			want: "\x1b[0;39;48;5;196mhi",
		},
		{
			name: "custom in basic mode",
			mode: ColorModeBasic,
			mods: []console.Modifier{console.TextColor(console.Custom(250, 10, 10))},
			want: "\x1b[0;31;49mhi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			term, fb := newTestTerminal(t, tt.mode)
			for _, m := range tt.mods {
				term.Set(m)
			}
			console.Draw(term, 0, 0, "hi")
			term.Present()

			out := fb.output()
			if !strings.Contains(out, "\x1b[1;1H") {
				t.Errorf("Expected cursor move to origin in %q", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("Expected %q in %q", tt.want, out)
			}
		})
	}
}

func TestPresentDiffsAgainstScreen(t *testing.T) {
	term, fb := newTestTerminal(t, ColorModeTrueColor)

	console.Draw(term, 0, 0, "ab")
	term.Present()
	fb.output()

	// Same content again: nothing but the trailing reset
	term.Clear()
	console.Draw(term, 0, 0, "ab")
	term.Present()
	if out := fb.output(); out != "\x1b[0m" {
		t.Errorf("Expected no cell output for unchanged frame, got %q", out)
	}

	term.Clear()
	console.Draw(term, 0, 0, "ac")
	term.Present()
	out := fb.output()
	if !strings.Contains(out, "\x1b[1;2H") || !strings.Contains(out, "c") {
		t.Errorf("Expected only column 1 to be redrawn, got %q", out)
	}
	if strings.Contains(out, "a") {
		t.Errorf("Expected unchanged cell to be skipped, got %q", out)
	}
}

func TestScopedStyleOnTerminal(t *testing.T) {
	term, _ := newTestTerminal(t, ColorModeTrueColor)

	err := console.WithState(term, func(c console.Canvas) error {
		c.Set(console.Bold)
		console.Draw(c, 0, 0, "x")
		return nil
	})
	if err != nil {
		t.Fatalf("WithState failed: %v", err)
	}
	console.Draw(term, 1, 0, "y")

	if !term.back[0].Style.Bold {
		t.Error("Expected scoped draw to be bold")
	}
	if term.back[1].Style.Bold {
		t.Error("Expected bold to be gone after scope exit")
	}
	if term.Depth() != 1 {
		t.Errorf("Expected depth 1, got %d", term.Depth())
	}
}

func TestResizeAdoptedOnQuery(t *testing.T) {
	term, fb := newTestTerminal(t, ColorModeTrueColor)

	console.Draw(term, 0, 0, "keep")
	fb.setSize(30, 8)

	if w, h := term.Width(), term.Height(); w != 30 || h != 8 {
		t.Fatalf("Expected 30x8, got %dx%d", w, h)
	}

	term.DrawChar(29, 7, 'z')
	if got := term.back[7*30+29].Rune; got != 'z' {
		t.Errorf("Expected draw at new corner, got %q", got)
	}
	if got := term.back[0].Rune; got != 'k' {
		t.Errorf("Expected overlapping content to survive resize, got %q", got)
	}
}

func TestSupportsCustomColors(t *testing.T) {
	tests := []struct {
		mode ColorMode
		want bool
	}{
		{ColorModeTrueColor, true},
		{ColorMode256, false},
		{ColorModeBasic, false},
	}
	for _, tt := range tests {
		term := New(newFakeBackend(4, 4), WithColorMode(tt.mode))
		if got := term.SupportsCustomColors(); got != tt.want {
			t.Errorf("Mode %s: expected %v, got %v", tt.mode, tt.want, got)
		}
	}
}

func TestDegradedColorWarnsOnce(t *testing.T) {
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	term, _ := newTestTerminal(t, ColorMode256, WithLogger(logger))

	term.Set(console.TextColor(console.Custom(10, 200, 30)))
	console.Draw(term, 0, 0, "a")
	term.Present()

	term.Set(console.TextColor(console.Custom(200, 10, 30)))
	console.Draw(term, 1, 0, "b")
	term.Present()

	if n := strings.Count(logBuf.String(), "custom color approximated"); n != 1 {
		t.Errorf("Expected one degradation warning, got %d", n)
	}
}

func TestCursorShownOnPresent(t *testing.T) {
	term, fb := newTestTerminal(t, ColorModeTrueColor)

	term.Cursor(3, 2)
	term.Present()
	out := fb.output()
	if !strings.Contains(out, "\x1b[3;4H\x1b[?25h") {
		t.Errorf("Expected cursor placement and show, got %q", out)
	}

	term.HideCursor()
	if out := fb.output(); !strings.Contains(out, "\x1b[?25l") {
		t.Errorf("Expected cursor hide, got %q", out)
	}
}

func TestPresentReplacesControlRunes(t *testing.T) {
	term, fb := newTestTerminal(t, ColorModeTrueColor)

	term.DrawChar(0, 0, '\x1b')
	term.DrawChar(1, 0, 'c')
	term.Present()
	if out, want := fb.output(), "\x1b[1;1H\x1b[0;39;49m c\x1b[0m"; out != want {
		t.Errorf("Expected %q, got %q", want, out)
	}

	console.Draw(term, 0, term.Height()-1, "a\nb\x7f\u0085")
	term.Present()
	out := fb.output()
	for _, b := range []string{"\n", "\x7f", "\u0085"} {
		if strings.Contains(out, b) {
			t.Errorf("Expected control %q to be replaced, got %q", b, out)
		}
	}
	if !strings.Contains(out, "a b") {
		t.Errorf("Expected control cell drawn as a space, got %q", out)
	}
}
