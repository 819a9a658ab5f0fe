package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"github.com/lixenwraith/textconsole/console"
	"github.com/lixenwraith/textconsole/service"
)

// Service manages terminal lifecycle and pumps input updates into a channel
type Service struct {
	backend Backend
	term    *Terminal
	logger  *slog.Logger
	pump    *service.Pump

	mu      sync.Mutex
	stopped bool
}

// NewService creates a terminal service on backend
func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Name implements service.Service
func (s *Service) Name() string {
	return "terminal"
}

// Init implements service.Service
// Accepted args: ColorMode (defaults to DetectColorMode()), *slog.Logger
func (s *Service) Init(args ...any) error {
	opts := make([]Option, 0, 2)
	for _, arg := range args {
		switch v := arg.(type) {
		case ColorMode:
			opts = append(opts, WithColorMode(v))
		case *slog.Logger:
			s.logger = v
			opts = append(opts, WithLogger(v))
		}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}

	s.term = New(s.backend, opts...)
	if err := s.term.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}
	s.pump = service.NewPump(s.term, s.logger, crashed)
	return nil
}

// crashed restores the terminal before reporting a panic in the poll loop
func crashed(r any) {
	EmergencyReset(os.Stdout)
	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMINAL POLL CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Stderr.Sync()
	os.Exit(1)
}

// Start implements service.Service - launches input polling goroutine
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pump == nil {
		return ErrNotInitialized
	}
	s.pump.Start()
	return nil
}

// Stop implements service.Service - restores the terminal and ends polling
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped || s.pump == nil {
		return nil
	}
	s.stopped = true

	s.pump.Stop()
	// Fini closes the input, which unblocks Next in the pump
	s.term.Fini()
	if !s.pump.Wait(250 * time.Millisecond) {
		s.logger.Warn("terminal poll loop did not stop in time")
	}
	return nil
}

// Terminal returns the wrapped terminal, nil before Init
func (s *Service) Terminal() *Terminal {
	return s.term
}

// Canvas implements service.Console
func (s *Service) Canvas() console.Canvas {
	return s.term
}

// Events implements service.Console; nil before Init
func (s *Service) Events() <-chan console.Update {
	if s.pump == nil {
		return nil
	}
	return s.pump.Events()
}

var _ service.Console = (*Service)(nil)
