// Package console defines a backend-independent contract for text-mode
// rendering and input.
//
// Drawing goes through a Canvas: characters are written to cells, styled
// by the modifiers active in the top frame of the canvas's modifier stack,
// and made visible by Present. Scoped styling uses WithState or Enter, which
// guarantee the frame is popped on every exit path.
//
// Input is a pull-based stream of Update values unifying printable
// characters, special keys and resize notifications.
//
// Concrete backends live in the terminal (raw ANSI), tcellconsole (tcell)
// and virtual (in-memory) packages.
package console
