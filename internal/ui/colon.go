package ui

import (
	"fmt"
	"strings"

	"pgr/internal/keys"
)

// colon runs one colon-mode entry and the command it produces. The engine
// is back in normal mode when it returns, whatever happened.
func (e *Engine) colon() (Result, error) {
	e.setMode(ModeColon)
	defer e.setMode(ModeNormal)

	line, confirmed, err := e.readCommand()
	if err != nil {
		return ResultContinue, err
	}
	if !confirmed {
		if e.OnAbort != nil {
			e.OnAbort(line)
		}
		return ResultContinue, e.SetStatus("")
	}
	return e.execute(line)
}

// readCommand edits the command line in the status row. Keys bypass the
// keymap: Enter confirms, C-g cancels, anything carrying a character is
// appended as typed. Extended keys have no character and are ignored.
func (e *Engine) readCommand() (line string, confirmed bool, err error) {
	e.buffer = e.buffer[:0]
	for {
		if err := e.SetStatus(":" + string(e.buffer)); err != nil {
			return "", false, err
		}
		tok, err := e.keys.ReadKey()
		if err != nil {
			return "", false, fmt.Errorf("read key: %w", err)
		}
		switch tok {
		case keys.KeyEnter:
			return string(e.buffer), true, nil
		case keys.KeyCancel:
			return string(e.buffer), false, nil
		}
		if r, ok := tok.Rune(); ok {
			e.buffer = append(e.buffer, r)
		}
	}
}

// execute looks up a confirmed command line. Unknown lines, the empty one
// included, only produce a status message.
func (e *Engine) execute(line string) (Result, error) {
	cmd, known := e.commands.Lookup(line)
	if e.OnCommand != nil {
		e.OnCommand(line, known)
	}
	if !known {
		return ResultContinue, e.SetStatus("unknown command " + quoteCommand(line))
	}
	switch cmd {
	case CommandQuit:
		return ResultQuit, nil
	}
	return ResultContinue, nil
}

// quoteCommand wraps line in single quotes, switching to double quotes
// when it contains a single quote and no double quote. With both present,
// single quotes are kept and the inner ones escaped.
func quoteCommand(line string) string {
	if !strings.Contains(line, "'") {
		return "'" + line + "'"
	}
	if !strings.Contains(line, `"`) {
		return `"` + line + `"`
	}
	return "'" + strings.ReplaceAll(line, "'", `\'`) + "'"
}
