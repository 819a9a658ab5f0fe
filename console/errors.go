package console

import "errors"

var (
	// ErrStateUnderflow is returned when popping the base modifier frame.
	// It signals unbalanced PushState/PopState calls in caller code.
	ErrStateUnderflow = errors.New("console: modifier state underflow")

	// ErrUnsupportedColor is advisory: a custom color was requested on a
	// canvas without custom color support. Set never returns it.
	ErrUnsupportedColor = errors.New("console: custom colors not supported")

	// ErrClosed is returned by Input.Next once the backend is closed
	ErrClosed = errors.New("console: input closed")
)
