package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/lixenwraith/textconsole/console"
)

// Pump forwards updates from a blocking console.Input into a channel.
// The channel closes when the input ends or after Stop.
type Pump struct {
	in      console.Input
	logger  *slog.Logger
	onPanic func(any)

	eventCh chan console.Update
	stopCh  chan struct{}
	doneCh  chan struct{}

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewPump creates a pump over in; onPanic runs if Next panics and may be nil
func NewPump(in console.Input, logger *slog.Logger, onPanic func(any)) *Pump {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Pump{
		in:      in,
		logger:  logger,
		onPanic: onPanic,
		eventCh: make(chan console.Update, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// Start launches the polling goroutine; later calls are no-ops
func (p *Pump) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true
	go p.loop()
}

func (p *Pump) loop() {
	defer close(p.doneCh)
	defer close(p.eventCh)

	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("input pump crashed", "panic", r)
			if p.onPanic != nil {
				p.onPanic(r)
			}
		}
	}()

	for {
		u, err := p.in.Next()
		if err != nil {
			p.logger.Debug("input ended", "error", err)
			return
		}

		select {
		case p.eventCh <- u:
		case <-p.stopCh:
			return
		}
	}
}

// Events returns the update channel
func (p *Pump) Events() <-chan console.Update {
	return p.eventCh
}

// Stop signals the loop to exit. A loop blocked in Next only notices once
// the input itself is closed, so callers close it before Wait.
func (p *Pump) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	close(p.stopCh)
	if !p.started {
		close(p.eventCh)
		close(p.doneCh)
	}
}

// Wait blocks until the loop has exited or timeout elapses
func (p *Pump) Wait(timeout time.Duration) bool {
	select {
	case <-p.doneCh:
		return true
	case <-time.After(timeout):
		return false
	}
}
