package virtual

import (
	"sync"

	"github.com/lixenwraith/textconsole/console"
)

// Script is a console.Input fed programmatically.
// Next blocks until an update is fed or the script is closed.
type Script struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []console.Update
	closed bool
}

// NewScript returns a closed script that replays updates then reports console.ErrClosed
func NewScript(updates ...console.Update) *Script {
	s := OpenScript()
	s.Feed(updates...)
	s.Close()
	return s
}

// OpenScript returns an empty script that stays open until Close
func OpenScript() *Script {
	s := &Script{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Feed appends updates; feeding a closed script is a no-op
func (s *Script) Feed(updates ...console.Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.queue = append(s.queue, updates...)
	s.cond.Broadcast()
}

// Close ends the stream once queued updates are drained
func (s *Script) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.cond.Broadcast()
}

// Pending returns the number of queued updates
func (s *Script) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Next implements console.Input
func (s *Script) Next() (console.Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.queue) == 0 && !s.closed {
		s.cond.Wait()
	}
	if len(s.queue) == 0 {
		return console.Update{}, console.ErrClosed
	}
	u := s.queue[0]
	s.queue = s.queue[1:]
	return u, nil
}

var _ console.Input = (*Script)(nil)
