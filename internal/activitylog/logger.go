package activitylog

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Logger writes structured JSONL entries to an activity log file.
// All methods are safe for concurrent use. When disabled (w is nil),
// all methods are no-ops.
type Logger struct {
	mu        sync.Mutex
	w         *os.File
	actor     string
	sessionID string
}

// New creates a Logger that appends to logPath. An empty logPath or a file
// that cannot be opened yields a no-op logger. Each logger gets a fresh
// session ID so entries from concurrent runs can be told apart.
func New(logPath, actor string) *Logger {
	if logPath == "" {
		return &Logger{}
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return &Logger{}
	}
	return &Logger{w: f, actor: actor, sessionID: uuid.NewString()}
}

// Nop returns a disabled logger. All methods are no-ops.
func Nop() *Logger {
	return &Logger{}
}

// Enabled reports whether entries are being written.
func (l *Logger) Enabled() bool {
	return l.w != nil
}

// SessionID returns the ID stamped on every entry.
func (l *Logger) SessionID() string {
	return l.sessionID
}

// entry is the common envelope for all log lines.
type entry struct {
	Timestamp string `json:"ts"`
	Actor     string `json:"actor"`
	SessionID string `json:"session_id"`
	Event     string `json:"event"`
}

// ConfigLoaded logs the config file in effect and how many bindings it added.
func (l *Logger) ConfigLoaded(path string, bindings int) {
	l.log(struct {
		entry
		Path     string `json:"path,omitempty"`
		Bindings int    `json:"bindings"`
	}{
		entry:    l.entry("config_loaded"),
		Path:     path,
		Bindings: bindings,
	})
}

// SessionStart logs the terminal geometry at startup.
func (l *Logger) SessionStart(rows, cols int) {
	l.log(struct {
		entry
		Rows int `json:"rows"`
		Cols int `json:"cols"`
	}{
		entry: l.entry("session_start"),
		Rows:  rows,
		Cols:  cols,
	})
}

// ModeChange logs an input mode transition.
func (l *Logger) ModeChange(from, to string) {
	l.log(struct {
		entry
		From string `json:"from"`
		To   string `json:"to"`
	}{
		entry: l.entry("mode_change"),
		From:  from,
		To:    to,
	})
}

// Command logs a confirmed colon command and whether it was recognised.
func (l *Logger) Command(line string, known bool) {
	l.log(struct {
		entry
		Command string `json:"command"`
		Known   bool   `json:"known"`
	}{
		entry:   l.entry("command"),
		Command: line,
		Known:   known,
	})
}

// ColonAbort logs a cancelled colon entry with whatever had been typed.
func (l *Logger) ColonAbort(line string) {
	l.log(struct {
		entry
		Buffer string `json:"buffer"`
	}{
		entry:  l.entry("colon_abort"),
		Buffer: line,
	})
}

// SessionEnd logs why the session finished.
func (l *Logger) SessionEnd(reason string, err error) {
	e := struct {
		entry
		Reason string `json:"reason"`
		Error  string `json:"error,omitempty"`
	}{
		entry:  l.entry("session_end"),
		Reason: reason,
	}
	if err != nil {
		e.Error = err.Error()
	}
	l.log(e)
}

// Close closes the underlying file.
func (l *Logger) Close() error {
	if l.w == nil {
		return nil
	}
	return l.w.Close()
}

func (l *Logger) entry(event string) entry {
	return entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Actor:     l.actor,
		SessionID: l.sessionID,
		Event:     event,
	}
}

func (l *Logger) log(v any) {
	if l.w == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	data = append(data, '\n')
	l.mu.Lock()
	l.w.Write(data)
	l.mu.Unlock()
}
