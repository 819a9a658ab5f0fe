// Package virtual provides an in-memory console backend for tests and
// headless rendering: a Canvas with inspectable buffers and a Script input.
package virtual
