package e2etests

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

// pgrBinary is the path to the compiled pgr binary, set by TestMain.
var pgrBinary string

func TestMain(m *testing.M) {
	// Build pgr binary into a temp directory.
	tmp, err := os.MkdirTemp("", "pgr-e2e-*")
	if err != nil {
		fmt.Fprintf(os.Stderr, "e2e: create temp dir: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(tmp)

	pgrBinary = filepath.Join(tmp, "pgr")
	cmd := exec.Command("go", "build", "-o", pgrBinary, "./cmd/pgr")
	cmd.Dir = filepath.Join(mustGetwd(), "..")
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "e2e: build pgr: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// PgrResult holds the output of a pgr command execution.
type PgrResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// testEnv isolates pgr from the user's own config and activity log.
func testEnv(t *testing.T, extraEnv ...string) []string {
	t.Helper()
	env := append(os.Environ(),
		"PGR_CONFIG=",
		"PGR_ACTIVITY_LOG=",
		"XDG_CONFIG_HOME="+t.TempDir(),
	)
	return append(env, extraEnv...)
}

// runPgr executes the pgr binary with pipes for stdio. extraEnv entries
// are in "KEY=VALUE" format and override os.Environ().
func runPgr(t *testing.T, extraEnv []string, args ...string) PgrResult {
	t.Helper()

	cmd := exec.Command(pgrBinary, args...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = testEnv(t, extraEnv...)

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			t.Fatalf("pgr command failed to execute: %v", err)
		}
	}

	return PgrResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: exitCode,
	}
}

// ptySession is a pgr process attached to a pseudo-terminal.
type ptySession struct {
	t    *testing.T
	cmd  *exec.Cmd
	ptmx *os.File

	mu   sync.Mutex
	out  bytes.Buffer
	done chan struct{}
}

// startPty launches pgr on a rows x cols pseudo-terminal and collects
// everything it draws.
func startPty(t *testing.T, rows, cols uint16, extraEnv []string, args ...string) *ptySession {
	t.Helper()

	cmd := exec.Command(pgrBinary, args...)
	cmd.Env = testEnv(t, extraEnv...)
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: rows, Cols: cols})
	if err != nil {
		t.Fatalf("start pgr on pty: %v", err)
	}

	s := &ptySession{t: t, cmd: cmd, ptmx: ptmx, done: make(chan struct{})}
	go func() {
		defer close(s.done)
		buf := make([]byte, 4096)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				s.mu.Lock()
				s.out.Write(buf[:n])
				s.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	t.Cleanup(func() {
		ptmx.Close()
		if cmd.ProcessState == nil {
			cmd.Process.Kill()
			cmd.Wait()
		}
	})
	return s
}

// output returns everything written to the terminal so far.
func (s *ptySession) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// waitFor polls the terminal output until it contains want.
func (s *ptySession) waitFor(want string) {
	s.t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), want) {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	s.t.Fatalf("timed out waiting for %q in output:\n%q", want, s.output())
}

func (s *ptySession) send(keys string) {
	s.t.Helper()
	if _, err := s.ptmx.Write([]byte(keys)); err != nil {
		s.t.Fatalf("write to pty: %v", err)
	}
}

// wait blocks until pgr exits and returns its exit code.
func (s *ptySession) wait() int {
	s.t.Helper()
	errCh := make(chan error, 1)
	go func() { errCh <- s.cmd.Wait() }()
	select {
	case err := <-errCh:
		if err == nil {
			return 0
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode()
		}
		s.t.Fatalf("wait for pgr: %v", err)
	case <-time.After(5 * time.Second):
		s.t.Fatalf("pgr did not exit; output:\n%q", s.output())
	}
	return -1
}
