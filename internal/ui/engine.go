// Package ui is the dispatch engine: it owns the cursor, the binding and
// command tables, and the normal/colon mode state machine.
package ui

import (
	"fmt"

	"pgr/internal/content"
	"pgr/internal/keys"
)

// Mode is the current input mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeColon
)

func (m Mode) String() string {
	switch m {
	case ModeColon:
		return "colon"
	default:
		return "normal"
	}
}

// Result tells the caller of HandleKey whether to keep reading keys.
type Result int

const (
	ResultContinue Result = iota
	ResultQuit
)

// Surface is a drawable band of the terminal.
type Surface interface {
	Height() int
	WriteLine(row int, text string)
	Clear()
	Refresh() error
}

// KeySource blocks until the next key is pressed.
type KeySource interface {
	ReadKey() (keys.Token, error)
}

// Config wires an Engine to its tables and collaborators.
type Config struct {
	Keymap   *Keymap
	Commands Commands
	Content  content.Provider
	View     Surface
	Status   Surface
	Keys     KeySource
}

// Engine routes keys to actions. It is not safe for concurrent use; a
// single goroutine reads keys and draws.
type Engine struct {
	keymap   *Keymap
	commands Commands
	content  content.Provider
	view     Surface
	status   Surface
	keys     KeySource

	Row    int // 1-based, never below 1
	Column int // reserved
	Mode   Mode

	buffer     []rune
	statusText string

	OnModeChange func(from, to Mode)
	OnCommand    func(line string, known bool) // called for every confirmed colon command
	OnAbort      func(line string)             // called when colon entry is cancelled
}

// New returns an engine in normal mode at row 1.
func New(cfg Config) *Engine {
	return &Engine{
		keymap:   cfg.Keymap,
		commands: cfg.Commands,
		content:  cfg.Content,
		view:     cfg.View,
		status:   cfg.Status,
		keys:     cfg.Keys,
		Row:      1,
		Column:   1,
		Mode:     ModeNormal,
	}
}

// Run draws the viewport and dispatches keys until a command asks to
// quit, in which case it returns nil.
func (e *Engine) Run() error {
	if err := e.Render(); err != nil {
		return err
	}
	for {
		tok, err := e.keys.ReadKey()
		if err != nil {
			return fmt.Errorf("read key: %w", err)
		}
		res, err := e.HandleKey(tok)
		if err != nil {
			return err
		}
		if res == ResultQuit {
			return nil
		}
	}
}

// HandleKey runs the action bound to tok. Unbound keys do nothing.
func (e *Engine) HandleKey(tok keys.Token) (Result, error) {
	action, ok := e.keymap.Lookup(tok)
	if !ok {
		return ResultContinue, nil
	}
	return e.Do(action)
}

// Do runs one action.
func (e *Engine) Do(action Action) (Result, error) {
	switch action {
	case ActionNext:
		e.Row++
		return ResultContinue, e.Render()
	case ActionPrevious:
		if e.Row > 1 {
			e.Row--
		}
		return ResultContinue, e.Render()
	case ActionColon:
		return e.colon()
	case ActionInfo:
		return ResultContinue, e.SetStatus(fmt.Sprintf("%d lines", e.content.Count()))
	case ActionRedraw:
		e.view.Clear()
		if err := e.Render(); err != nil {
			return ResultContinue, err
		}
		return ResultContinue, e.SetStatus(e.statusText)
	}
	return ResultContinue, nil
}

func (e *Engine) setMode(mode Mode) {
	from := e.Mode
	e.Mode = mode
	if from != mode && e.OnModeChange != nil {
		e.OnModeChange(from, mode)
	}
}
