//go:build unix

package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// defaultPollTimeout bounds how long a lone ESC waits before it counts as a key
const defaultPollTimeout = 50 * time.Millisecond

// UnixBackend drives a tty through raw mode, poll(2) and SIGWINCH
type UnixBackend struct {
	in          *os.File
	out         *os.File
	inFd        int
	outFd       int
	oldTerm     *term.State
	pollTimeout time.Duration

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

// NewUnixBackend creates a backend reading in and writing out
func NewUnixBackend(in, out *os.File) *UnixBackend {
	return &UnixBackend{
		in:          in,
		out:         out,
		inFd:        int(in.Fd()),
		outFd:       int(out.Fd()),
		pollTimeout: defaultPollTimeout,
	}
}

// Open creates a Terminal on the process's stdin and stdout
func Open(opts ...Option) *Terminal {
	return New(NewUnixBackend(os.Stdin, os.Stdout), opts...)
}

// SetPollTimeout sets the read poll interval, which is also the lone-ESC delay
func (b *UnixBackend) SetPollTimeout(d time.Duration) {
	if d > 0 {
		b.pollTimeout = d
	}
}

func (b *UnixBackend) Init() error {
	if !term.IsTerminal(b.inFd) {
		return fmt.Errorf("terminal: %s is not a terminal", b.in.Name())
	}

	old, err := term.MakeRaw(b.inFd)
	if err != nil {
		return fmt.Errorf("terminal: enter raw mode: %w", err)
	}
	b.oldTerm = old
	rememberTermState(b.inFd, old)
	return nil
}

func (b *UnixBackend) Fini() {
	if b.resizeStopCh != nil {
		close(b.resizeStopCh)
		<-b.resizeDoneCh
		b.resizeStopCh = nil
	}
	if b.oldTerm != nil {
		term.Restore(b.inFd, b.oldTerm)
		b.oldTerm = nil
		rememberTermState(-1, nil)
	}
}

func (b *UnixBackend) Size() (int, int) {
	return getTerminalSize(b.outFd)
}

func (b *UnixBackend) Write(p []byte) error {
	_, err := b.out.Write(p)
	return err
}

// Read polls with a timeout so stopCh is noticed promptly
func (b *UnixBackend) Read(stopCh <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)
	timeoutMs := int(b.pollTimeout / time.Millisecond)

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{
			{Fd: int32(b.inFd), Events: unix.POLLIN},
		}

		n, err := unix.Poll(fds, timeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}

		if n == 0 {
			return nil, nil // Timeout lets the caller flush a pending ESC
		}
		if fds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 && fds[0].Revents&unix.POLLIN == 0 {
			return nil, io.EOF
		}

		rn, err := unix.Read(b.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}
		if rn == 0 {
			return nil, io.EOF
		}

		ret := make([]byte, rn)
		copy(ret, buf[:rn])
		return ret, nil
	}
}

func (b *UnixBackend) SetResizeHandler(handler func(width, height int)) {
	b.resizeStopCh = make(chan struct{})
	b.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(b.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-b.resizeStopCh:
				return
			case <-sigCh:
				w, h := b.Size()
				handler(w, h)
			}
		}
	}()
}

// getTerminalSize returns the terminal size for a given fd
func getTerminalSize(fd int) (int, int) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}
