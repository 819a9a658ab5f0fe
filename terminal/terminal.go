package terminal

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"

	"golang.org/x/term"

	"github.com/lixenwraith/textconsole/console"
)

// ErrNotInitialized is returned by Next before Init
var ErrNotInitialized = errors.New("terminal: not initialized")

// Terminal is a console.Canvas and console.Input over a raw ANSI terminal.
//
// Draws go to a back buffer; Present diffs it against what the screen
// shows and writes only the changed cells. Drawing methods belong to a
// single goroutine; Next may be called from another.
type Terminal struct {
	console.ModifierStack

	backend   Backend
	logger    *slog.Logger
	colorMode ColorMode

	// Back buffer, owned by the drawing goroutine
	back          []Cell
	width, height int
	cursorX       int
	cursorY       int
	cursorSet     bool

	mu          sync.Mutex // guards output and lifecycle
	output      *outputBuffer
	input       *inputReader
	initialized bool
	finalized   bool

	warnedColor sync.Once
}

// Option configures a Terminal
type Option func(*Terminal)

// WithColorMode overrides color detection
func WithColorMode(m ColorMode) Option {
	return func(t *Terminal) { t.colorMode = m }
}

// WithLogger sets the logger for lifecycle and degradation messages
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a Terminal on backend; color mode defaults to DetectColorMode()
func New(backend Backend, opts ...Option) *Terminal {
	t := &Terminal{
		backend:   backend,
		logger:    slog.New(slog.DiscardHandler),
		colorMode: DetectColorMode(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.output = newOutputBuffer(backendWriter{backend}, t.colorMode)
	t.output.degraded = func(c console.Color) {
		t.warnedColor.Do(func() {
			t.logger.Warn("custom color approximated", "color", c.String(), "mode", t.colorMode.String())
		})
	}
	t.input = newInputReader(backend, t.logger)
	return t
}

// Init enters raw mode and sets up terminal
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.initialized {
		return nil
	}

	if err := t.backend.Init(); err != nil {
		return err
	}

	w, h := t.backend.Size()
	t.resizeBack(w, h)
	t.output.resize(w, h)

	// Resizes share the input queue so they stay in order with key presses
	t.backend.SetResizeHandler(func(w, h int) {
		t.logger.Debug("terminal resized", "width", w, "height", h)
		t.input.post(console.Resize(w, h))
	})

	// Enter alternate screen, hide cursor
	t.writeRaw(csiAltScreenEnter)
	t.writeRaw(csiCursorHide)

	// Prevents terminal scroll/wrap on bottom-right corner write
	t.writeRaw(csiAutoWrapOff)

	t.output.clearScreen()
	t.commit()

	t.input.start()

	t.initialized = true
	t.logger.Info("terminal initialized", "width", w, "height", h, "color_mode", t.colorMode.String())
	return nil
}

// Fini restores terminal state. Safe to call multiple times
func (t *Terminal) Fini() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.input.stop()

	t.writeRaw(csiCursorShow)
	t.writeRaw(csiAltScreenExit)
	// Re-enable Auto-Wrap AFTER exiting alt screen to ensure the main buffer has wrap enabled
	t.writeRaw(csiAutoWrapOn)
	t.writeRaw(csiSGR0)

	t.backend.Fini()

	t.finalized = true
	t.logger.Info("terminal finalized")
}

// ColorMode returns the color capability in use
func (t *Terminal) ColorMode() ColorMode {
	return t.colorMode
}

// resizeBack reallocates the back buffer, keeping the overlapping region
func (t *Terminal) resizeBack(w, h int) {
	if w == t.width && h == t.height && t.back != nil {
		return
	}
	back := make([]Cell, w*h)
	for i := range back {
		back[i] = blankCell
	}
	for y := 0; y < min(h, t.height); y++ {
		copy(back[y*w:y*w+min(w, t.width)], t.back[y*t.width:y*t.width+min(w, t.width)])
	}
	t.back = back
	t.width, t.height = w, h
}

// syncSize follows the backend's current size
func (t *Terminal) syncSize() {
	w, h := t.backend.Size()
	t.resizeBack(w, h)
}

// DrawChar implements console.Canvas; cells outside the surface are dropped
func (t *Terminal) DrawChar(x, y int, c rune) {
	if x < 0 || y < 0 || x >= t.width || y >= t.height {
		return
	}
	t.back[y*t.width+x] = Cell{Rune: c, Style: t.Style()}
}

// Clear implements console.Canvas
func (t *Terminal) Clear() {
	t.syncSize()
	for i := range t.back {
		t.back[i] = blankCell
	}
}

// SupportsCustomColors implements console.Canvas; 256 and basic modes approximate
func (t *Terminal) SupportsCustomColors() bool {
	return t.colorMode == ColorModeTrueColor
}

// Present implements console.Canvas
func (t *Terminal) Present() {
	t.syncSize()

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	t.output.flush(t.back, t.width, t.height)
	if t.cursorSet {
		t.output.moveCursor(t.cursorX, t.cursorY)
	}
	t.commit()
}

// Cursor implements console.Canvas; the cursor becomes visible on the next Present
func (t *Terminal) Cursor(x, y int) {
	t.cursorX, t.cursorY = x, y
	t.cursorSet = true
}

// HideCursor hides the cursor again until the next Cursor call
func (t *Terminal) HideCursor() {
	t.cursorSet = false

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.initialized && !t.finalized {
		t.writeRaw(csiCursorHide)
	}
}

// Width implements console.Canvas and adopts a pending resize
func (t *Terminal) Width() int {
	t.syncSize()
	return t.width
}

// Height implements console.Canvas and adopts a pending resize
func (t *Terminal) Height() int {
	t.syncSize()
	return t.height
}

// Sync forces a full redraw on the next Present
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.initialized || t.finalized {
		return
	}

	// Diff-based rendering assumes physical terminal matches front buffer state
	t.output.clearScreen()
	t.output.forceFullRedraw()
	t.commit()
}

// Next implements console.Input
func (t *Terminal) Next() (console.Update, error) {
	t.mu.Lock()
	ready := t.initialized
	t.mu.Unlock()
	if !ready {
		return console.Update{}, ErrNotInitialized
	}
	return t.input.next()
}

// commit flushes buffered output; callers hold mu
func (t *Terminal) commit() {
	if err := t.output.commit(); err != nil {
		t.logger.Error("terminal write failed", "error", err)
	}
}

// writeRaw writes raw bytes ahead of any buffered output; callers hold mu
func (t *Terminal) writeRaw(data []byte) {
	t.commit()
	if err := t.backend.Write(data); err != nil {
		t.logger.Error("terminal write failed", "error", err)
	}
}

// savedState remembers the cooked-mode state for EmergencyReset
type savedState struct {
	fd    int
	state *term.State
}

var lastTermState atomic.Pointer[savedState]

// rememberTermState records the state to restore after a crash; nil forgets it
func rememberTermState(fd int, st *term.State) {
	if st == nil {
		lastTermState.Store(nil)
		return
	}
	lastTermState.Store(&savedState{fd: fd, state: st})
}

// EmergencyReset attempts to restore terminal to sane state
// Call this from panic recovery if Fini() cannot be called normally
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseOff)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	// Flush if it's a file
	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios; best-effort in crash context
	if s := lastTermState.Load(); s != nil {
		term.Restore(s.fd, s.state)
	}
}

var (
	_ console.Canvas = (*Terminal)(nil)
	_ console.Input  = (*Terminal)(nil)
)
