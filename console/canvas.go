package console

import "errors"

// Canvas is a drawable console surface.
//
// Cells with 0 <= x < Width() and 0 <= y < Height() are addressable;
// drawing elsewhere is clipped at the backend's discretion. Modifiers set
// through Set apply to every DrawChar until the enclosing frame is popped.
// A Canvas is owned by a single goroutine.
type Canvas interface {
	// DrawChar writes one code point at an absolute cell position
	DrawChar(x, y int, c rune)

	// Clear resets the surface; no particular resulting color is promised
	Clear()

	// Set activates a modifier in the top frame of the modifier stack
	Set(m Modifier)

	// PushState opens a modifier frame inheriting the active set
	PushState()

	// PopState restores the set active at the matching PushState.
	// Returns ErrStateUnderflow when only the base frame remains.
	PopState() error

	// SupportsCustomColors reports whether Custom colors render faithfully.
	// Setting a custom color when false has backend-defined results.
	SupportsCustomColors() bool

	// Present makes every prior draw visible at once
	Present()

	// Cursor places the terminal cursor, at the latest on the next Present
	Cursor(x, y int)

	// Width returns the current surface width; it may change after a resize
	Width() int

	// Height returns the current surface height
	Height() int
}

// Draw writes text left to right from (x, y), one cell per code point.
// There is no wrapping and no display-width handling.
func Draw(c Canvas, x, y int, text string) {
	for _, r := range text {
		c.DrawChar(x, y, r)
		x++
	}
}

// WithState runs f inside a fresh modifier frame. The frame is popped on
// every exit path, panics included. An error from f takes precedence; a
// failing pop is joined to it.
func WithState(c Canvas, f func(Canvas) error) (err error) {
	scope := Enter(c)
	defer func() {
		if popErr := scope.Close(); popErr != nil {
			err = errors.Join(err, popErr)
		}
	}()
	return f(c)
}

// Scope is a pushed modifier frame that must be closed exactly once.
//
//	scope := console.Enter(c)
//	defer scope.Close()
type Scope struct {
	canvas Canvas
	closed bool
}

// Enter pushes a modifier frame on c and returns its guard
func Enter(c Canvas) *Scope {
	c.PushState()
	return &Scope{canvas: c}
}

// Close pops the frame; later calls are no-ops
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.canvas.PopState()
}

// CheckColor reports ErrUnsupportedColor when m needs custom colors c cannot show
func CheckColor(c Canvas, m Modifier) error {
	if m.usesCustomColor() && !c.SupportsCustomColors() {
		return ErrUnsupportedColor
	}
	return nil
}
