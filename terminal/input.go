package terminal

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/lixenwraith/textconsole/console"
)

// decoder turns raw terminal bytes into updates.
// Partial escape and UTF-8 sequences are kept until more bytes arrive.
type decoder struct {
	buf  []byte
	emit func(console.Update)
}

func newDecoder(emit func(console.Update)) *decoder {
	return &decoder{buf: make([]byte, 0, 256), emit: emit}
}

// feed appends data and decodes every complete sequence
func (d *decoder) feed(data []byte) {
	d.buf = append(d.buf, data...)
	consumed := d.parse(d.buf)
	if consumed >= len(d.buf) {
		d.buf = d.buf[:0]
	} else if consumed > 0 {
		copy(d.buf, d.buf[consumed:])
		d.buf = d.buf[:len(d.buf)-consumed]
	}
}

// idle is called when no input arrived for the escape timeout;
// a lone pending ESC is then a real Esc key press
func (d *decoder) idle() {
	if len(d.buf) == 0 || d.buf[0] != 0x1b {
		return
	}
	switch len(d.buf) {
	case 1:
		d.emit(console.Special(console.KeyEsc))
		d.buf = d.buf[:0]
	case 2:
		// Alt+[ or Alt+O that never grew into a sequence
		d.emit(console.Character(rune(d.buf[1])))
		d.buf = d.buf[:0]
	}
}

// parse decodes data and returns bytes consumed (stops on incomplete sequence)
func (d *decoder) parse(data []byte) int {
	i := 0
	n := len(data)

	for i < n {
		b := data[i]

		switch {
		case b == ' ':
			d.emit(console.Special(console.KeySpace))
			i++

		case b > 0x20 && b < 0x7f:
			d.emit(console.Character(rune(b)))
			i++

		case b == 0x1b:
			// Need at least 2 bytes to determine sequence type
			if i+1 >= n {
				return i
			}
			consumed, u, ok := d.parseEscape(data[i:])
			if consumed == 0 {
				return i
			}
			if ok {
				d.emit(u)
			}
			i += consumed

		case b < 0x20:
			d.emit(controlKey(b))
			i++

		case b == 0x7f:
			d.emit(console.Special(console.KeyBackspace))
			i++

		default:
			// UTF-8 multibyte
			if !utf8.FullRune(data[i:]) {
				return i
			}
			r, size := utf8.DecodeRune(data[i:])
			if r != utf8.RuneError || size > 1 {
				d.emit(console.Character(r))
			}
			i += size
		}
	}
	return i
}

// parseEscape parses a sequence starting with ESC; consumed == 0 means incomplete.
// ok is false for sequences that are swallowed (mouse, unknown).
func (d *decoder) parseEscape(data []byte) (consumed int, u console.Update, ok bool) {
	switch next := data[1]; {
	case next == '[':
		return d.parseCSI(data)
	case next == 'O':
		if len(data) < 3 {
			return 0, console.Update{}, false
		}
		k, found := ss3Map[data[2]]
		return 3, console.Special(k), found
	case next == 0x1b:
		// ESC ESC: Alt+Esc
		return 2, console.Special(console.KeyEsc), true
	case next < 0x20:
		// Alt+control, reported without the Alt
		return 2, controlKey(next), true
	case next == ' ':
		return 2, console.Special(console.KeySpace), true
	case next < 0x7f:
		// Alt+printable, reported without the Alt
		return 2, console.Character(rune(next)), true
	}
	// ESC followed by DEL or a non-ASCII byte: the ESC stands alone
	return 1, console.Special(console.KeyEsc), true
}

// parseCSI parses a CSI sequence
func (d *decoder) parseCSI(data []byte) (int, console.Update, bool) {
	if len(data) < 3 {
		return 0, console.Update{}, false
	}

	// SGR mouse (ESC [ < Btn ; X ; Y M/m) is consumed and dropped
	if data[2] == '<' {
		for end := 3; end < len(data) && end < 32; end++ {
			if data[end] == 'M' || data[end] == 'm' {
				return end + 1, console.Update{}, false
			}
		}
		if len(data) >= 32 {
			return 3, console.Update{}, false
		}
		return 0, console.Update{}, false
	}

	// Linux console function keys: ESC [ [ A..E
	if data[2] == '[' {
		if len(data) < 4 {
			return 0, console.Update{}, false
		}
		k, found := lookupCSI(data[2:4])
		return 4, console.Special(k), found
	}

	const maxScan = 16
	for end := 2; end < len(data) && end < maxScan; end++ {
		b := data[end]
		if (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || b == '~' {
			k, found := lookupCSI(data[2 : end+1])
			return end + 1, console.Special(k), found
		}
		if b < 0x20 || b > 0x7e {
			// Malformed; drop the introducer
			return 2, console.Update{}, false
		}
	}
	if len(data) >= maxScan {
		return 2, console.Update{}, false
	}
	return 0, console.Update{}, false
}

// inputReader pumps backend reads through the decoder into one ordered queue
// shared with resize notifications
type inputReader struct {
	backend Backend
	logger  *slog.Logger
	eventCh chan console.Update
	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool
	stopped bool
	err     error // set before doneCh closes
}

// newInputReader creates a new input reader
func newInputReader(backend Backend, logger *slog.Logger) *inputReader {
	return &inputReader{
		backend: backend,
		logger:  logger,
		eventCh: make(chan console.Update, 256),
		stopCh:  make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
}

// start begins reading input in a goroutine
func (r *inputReader) start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running || r.stopped {
		return
	}
	r.running = true
	go r.readLoop()
}

// stop signals the reader to stop
func (r *inputReader) stop() {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	r.stopped = true
	wasRunning := r.running
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	if !wasRunning {
		close(r.doneCh)
		return
	}
	// Wait with timeout - don't block forever if read is stuck
	select {
	case <-r.doneCh:
	case <-time.After(100 * time.Millisecond):
		r.logger.Warn("input reader did not stop in time")
	}
}

// post queues an update, giving up when the reader is stopped
func (r *inputReader) post(u console.Update) {
	select {
	case r.eventCh <- u:
	case <-r.stopCh:
	}
}

// next returns the next queued update, draining the queue before reporting closure
func (r *inputReader) next() (console.Update, error) {
	select {
	case u := <-r.eventCh:
		return u, nil
	default:
	}
	select {
	case u := <-r.eventCh:
		return u, nil
	case <-r.doneCh:
		select {
		case u := <-r.eventCh:
			return u, nil
		default:
		}
		if r.err != nil {
			return console.Update{}, r.err
		}
		return console.Update{}, console.ErrClosed
	}
}

// readLoop is the main input reading goroutine
func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	// Panic recovery for raw input reader
	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			// Use \r\n for clean output
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT READER CRASHED: %v\x1b[0m\r\n", rec)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	dec := newDecoder(r.post)

	for {
		data, err := r.backend.Read(r.stopCh)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				r.err = fmt.Errorf("terminal: read input: %w", err)
				r.logger.Error("input read failed", "error", err)
				return
			}
			dec.idle()
			return
		}

		if len(data) == 0 {
			// Timeout or empty read
			dec.idle()
			select {
			case <-r.stopCh:
				return
			default:
				continue
			}
		}

		dec.feed(data)
	}
}
