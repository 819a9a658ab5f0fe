package tcellconsole

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/textconsole/console"
)

// ErrNotInitialized is returned by Next before Init
var ErrNotInitialized = errors.New("tcellconsole: not initialized")

// Screen is a console.Canvas and console.Input over a tcell.Screen.
// Drawing methods belong to a single goroutine; Next may be called from another.
type Screen struct {
	console.ModifierStack

	screen tcell.Screen
	logger *slog.Logger

	mu           sync.Mutex
	initialized  bool
	finalized    bool
	customColors bool

	warnedColor sync.Once
}

// Option configures a Screen
type Option func(*Screen)

// WithLogger sets the logger for lifecycle and degradation messages
func WithLogger(l *slog.Logger) Option {
	return func(s *Screen) {
		if l != nil {
			s.logger = l
		}
	}
}

// New wraps an uninitialized tcell screen
func New(screen tcell.Screen, opts ...Option) *Screen {
	s := &Screen{
		screen: screen,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Screen on the controlling terminal
func Open(opts ...Option) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("tcellconsole: create screen: %w", err)
	}
	return New(screen, opts...), nil
}

// Init initializes the tcell screen
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("tcellconsole: init screen: %w", err)
	}

	s.customColors = s.screen.Colors() >= 1<<24
	s.screen.HideCursor()
	s.screen.Clear()

	s.initialized = true
	w, h := s.screen.Size()
	s.logger.Info("tcell screen initialized", "width", w, "height", h, "colors", s.screen.Colors())
	return nil
}

// Fini restores the terminal. Safe to call multiple times
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}
	s.screen.Fini()
	s.finalized = true
	s.logger.Info("tcell screen finalized")
}

// DrawChar implements console.Canvas; cells outside the surface are dropped
func (s *Screen) DrawChar(x, y int, c rune) {
	w, h := s.screen.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}

	st := s.Style()
	if !s.customColors && usesCustom(st) {
		s.warnedColor.Do(func() {
			s.logger.Warn("custom color approximated", "colors", s.screen.Colors())
		})
	}
	s.screen.SetContent(x, y, c, nil, tcellStyle(st))
}

// Clear implements console.Canvas
func (s *Screen) Clear() {
	s.screen.Clear()
}

// SupportsCustomColors implements console.Canvas; true only for 24-bit screens
func (s *Screen) SupportsCustomColors() bool {
	return s.customColors
}

// Present implements console.Canvas
func (s *Screen) Present() {
	s.screen.Show()
}

// Cursor implements console.Canvas
func (s *Screen) Cursor(x, y int) {
	s.screen.ShowCursor(x, y)
}

// HideCursor hides the cursor again until the next Cursor call
func (s *Screen) HideCursor() {
	s.screen.HideCursor()
}

// Width implements console.Canvas
func (s *Screen) Width() int {
	w, _ := s.screen.Size()
	return w
}

// Height implements console.Canvas
func (s *Screen) Height() int {
	_, h := s.screen.Size()
	return h
}

// Next implements console.Input. Events without a console meaning are skipped.
func (s *Screen) Next() (console.Update, error) {
	s.mu.Lock()
	ready := s.initialized
	s.mu.Unlock()
	if !ready {
		return console.Update{}, ErrNotInitialized
	}

	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return console.Update{}, console.ErrClosed
		}
		if u, ok := translateEvent(ev); ok {
			return u, nil
		}
	}
}

// Underlying exposes the wrapped tcell.Screen
func (s *Screen) Underlying() tcell.Screen {
	return s.screen
}

var (
	_ console.Canvas = (*Screen)(nil)
	_ console.Input  = (*Screen)(nil)
)
