package ui

// Command is a global action reachable from colon mode.
type Command int

const (
	CommandQuit Command = iota + 1
)

// Commands maps complete colon-mode input to a command. Immutable.
type Commands struct {
	byName map[string]Command
}

// DefaultCommands returns the built-in command table.
func DefaultCommands() Commands {
	return Commands{byName: map[string]Command{
		"q": CommandQuit,
	}}
}

// Lookup returns the command registered under name.
func (c Commands) Lookup(name string) (Command, bool) {
	cmd, ok := c.byName[name]
	return cmd, ok
}

func (c Command) String() string {
	switch c {
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}
