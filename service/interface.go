package service

import "github.com/lixenwraith/textconsole/console"

// Service defines the lifecycle interface for long-lived backends
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - implicit configuration (e.g. from parsed flags/env)
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Init configures the service from optional args
	// Args are service-specific (color mode, logger)
	Init(args ...any) error

	// Start begins service operation (launches goroutines if any)
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent - safe to call multiple times
	Stop() error
}

// Console is a Service that exposes a drawing surface and its input stream
type Console interface {
	Service

	// Canvas is valid between Init and Stop
	Canvas() console.Canvas

	// Events delivers updates pumped from the backend input after Start.
	// The channel is closed when the input ends or the service stops.
	Events() <-chan console.Update
}

// StopAll stops services in reverse order and returns the first error
func StopAll(services ...Service) error {
	var first error
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Stop(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
