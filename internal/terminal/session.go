package terminal

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// MinRows is the smallest terminal that fits one content row and the
// status row.
const MinRows = 2

var errNotTerminal = errors.New("not a terminal")

// AcquireError reports that the terminal could not be put into raw mode.
type AcquireError struct {
	Op  string
	Err error
}

func (e *AcquireError) Error() string {
	return fmt.Sprintf("acquire terminal: %s: %v", e.Op, e.Err)
}

func (e *AcquireError) Unwrap() error { return e.Err }

// Session owns the controlling terminal between Enter and Exit.
type Session struct {
	in  *os.File
	out *os.File

	mu      sync.Mutex
	active  bool
	restore *term.State
	output  *termenv.Output
	sigCh   chan os.Signal

	// exit terminates the process after a fatal signal. Replaced in tests.
	exit func(code int)
}

// New returns a session over the given terminal streams, normally
// os.Stdin and os.Stdout.
func New(in, out *os.File) *Session {
	return &Session{in: in, out: out, exit: os.Exit}
}

// Enter switches the terminal to raw mode with the cursor hidden on the
// alternate screen and returns the drawable screen. Callers must defer
// Exit as soon as Enter succeeds.
func (s *Session) Enter() (*Screen, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return nil, &AcquireError{Op: "enter", Err: errors.New("session already active")}
	}

	fd := s.in.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return nil, &AcquireError{Op: "open", Err: errNotTerminal}
	}
	cols, rows, err := term.GetSize(int(fd))
	if err != nil {
		return nil, &AcquireError{Op: "get size", Err: err}
	}
	if rows < MinRows {
		return nil, &AcquireError{Op: "get size", Err: fmt.Errorf("terminal too small (need at least %d rows, have %d)", MinRows, rows)}
	}

	s.restore, err = term.MakeRaw(int(fd))
	if err != nil {
		return nil, &AcquireError{Op: "set raw mode", Err: err}
	}
	s.active = true

	s.output = termenv.NewOutput(s.out)
	s.output.AltScreen()
	s.output.HideCursor()
	s.output.ClearScreen()

	s.watchSignals()

	return NewScreen(s.in, s.out, rows, cols), nil
}

// Exit undoes everything Enter did. It is idempotent and safe to call
// from any goroutine, so the deferred call, an error path and the signal
// watcher can all reach it.
func (s *Session) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active {
		return nil
	}
	s.active = false

	signal.Stop(s.sigCh)
	close(s.sigCh)

	s.output.ShowCursor()
	s.output.ExitAltScreen()
	if err := term.Restore(int(s.in.Fd()), s.restore); err != nil {
		return fmt.Errorf("restore terminal: %w", err)
	}
	return nil
}

// Active reports whether the terminal is currently held in raw mode.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// watchSignals restores the terminal before the process dies from a
// termination signal. Raw mode disables ISIG, so these only arrive from
// outside the terminal. Must be called with s.mu held.
func (s *Session) watchSignals() {
	s.sigCh = make(chan os.Signal, 1)
	signal.Notify(s.sigCh, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT)
	go func(ch <-chan os.Signal) {
		if _, ok := <-ch; !ok {
			return
		}
		s.Exit()
		s.exit(1)
	}(s.sigCh)
}
