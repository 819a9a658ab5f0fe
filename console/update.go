package console

import (
	"fmt"
	"iter"
)

// UpdateKind distinguishes update variants
type UpdateKind uint8

const (
	UpdateCharacter UpdateKind = iota
	UpdateSpecial
	UpdateResize
)

// Update is a single console event: a printable character, a special key
// or a resize. Only the fields of its Kind are set; Update is comparable.
type Update struct {
	Kind   UpdateKind
	Char   rune
	Key    SpecialKey
	Width  int
	Height int
}

// Character is a key press of a printable code point
func Character(c rune) Update {
	return Update{Kind: UpdateCharacter, Char: c}
}

// Special is a key press of a non-printable key
func Special(k SpecialKey) Update {
	return Update{Kind: UpdateSpecial, Key: k}
}

// Resize reports the new console dimensions
func Resize(width, height int) Update {
	return Update{Kind: UpdateResize, Width: width, Height: height}
}

func (u Update) String() string {
	switch u.Kind {
	case UpdateCharacter:
		return fmt.Sprintf("Character(%q)", u.Char)
	case UpdateSpecial:
		return "Special(" + u.Key.String() + ")"
	case UpdateResize:
		return fmt.Sprintf("Resize(%d, %d)", u.Width, u.Height)
	}
	return fmt.Sprintf("Update(%d)", uint8(u.Kind))
}

// Input is a pull-based stream of console updates.
//
// Updates come in the order the backend observed them and each is
// returned once. Next returns ErrClosed after the backend is closed.
// Whether Next blocks is up to the backend. Input has a single consumer.
type Input interface {
	Next() (Update, error)
}

// Updates exposes in as a lazy sequence that ends at the first error
func Updates(in Input) iter.Seq[Update] {
	return func(yield func(Update) bool) {
		for {
			u, err := in.Next()
			if err != nil {
				return
			}
			if !yield(u) {
				return
			}
		}
	}
}

// Collect pulls up to n updates, stopping early on error.
// The error is nil when n updates were read.
func Collect(in Input, n int) ([]Update, error) {
	out := make([]Update, 0, max(n, 0))
	for len(out) < n {
		u, err := in.Next()
		if err != nil {
			return out, err
		}
		out = append(out, u)
	}
	return out, nil
}
