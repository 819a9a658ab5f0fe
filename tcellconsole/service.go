package tcellconsole

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/textconsole/console"
	"github.com/lixenwraith/textconsole/service"
)

// Service manages a tcell Screen and pumps its updates into a channel
type Service struct {
	factory func() (tcell.Screen, error)
	screen  *Screen
	logger  *slog.Logger
	pump    *service.Pump

	mu      sync.Mutex
	stopped bool
}

// NewService creates a service; a nil factory uses tcell.NewScreen
func NewService(factory func() (tcell.Screen, error)) *Service {
	if factory == nil {
		factory = tcell.NewScreen
	}
	return &Service{factory: factory}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "tcell"
}

// Init implements service.Service
// Accepted args: *slog.Logger
func (s *Service) Init(args ...any) error {
	for _, arg := range args {
		if l, ok := arg.(*slog.Logger); ok {
			s.logger = l
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	ts, err := s.factory()
	if err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	s.screen = New(ts, WithLogger(s.logger))
	if err := s.screen.Init(); err != nil {
		return fmt.Errorf("tcell init: %w", err)
	}
	s.pump = service.NewPump(s.screen, s.logger, func(r any) {
		ts.Fini()
		fmt.Fprintf(os.Stderr, "TCELL POLL CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
		os.Exit(1)
	})
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pump == nil {
		return ErrNotInitialized
	}
	s.pump.Start()
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.pump == nil {
		return nil
	}
	s.stopped = true

	s.pump.Stop()
	// PollEvent returns nil once the screen is finalized
	s.screen.Fini()
	if !s.pump.Wait(250 * time.Millisecond) {
		s.logger.Warn("tcell poll loop did not stop in time")
	}
	return nil
}

// Screen returns the wrapped screen, nil before Init
func (s *Service) Screen() *Screen {
	return s.screen
}

// Canvas implements service.Console
func (s *Service) Canvas() console.Canvas {
	return s.screen
}

// Events implements service.Console; nil before Init
func (s *Service) Events() <-chan console.Update {
	if s.pump == nil {
		return nil
	}
	return s.pump.Events()
}

var _ service.Console = (*Service)(nil)
