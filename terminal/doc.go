// @focus: #sys { term }
// Package terminal implements console.Canvas and console.Input directly on an
// ANSI terminal.
//
// Features:
//   - Modifier stack with bold, underline, named and custom colors
//   - True color (24-bit) output, approximated in 256-color and basic modes
//   - Double-buffered output with cell-level diffing
//   - Raw stdin decoding into Character, Special and Resize updates
//   - SIGWINCH resizes delivered in order with key presses
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
