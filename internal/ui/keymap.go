package ui

import (
	"fmt"

	"pgr/internal/content"
	"pgr/internal/keys"
)

// Action is a normal-mode operation a key can be bound to.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrevious
	ActionColon
	ActionInfo
	ActionRedraw
)

var actionNames = map[Action]string{
	ActionNext:     "next",
	ActionPrevious: "previous",
	ActionColon:    "colon",
	ActionInfo:     "info",
	ActionRedraw:   "redraw",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction returns the action with the given name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// Binding declares one key name and the name of the action it runs.
type Binding struct {
	Key    string
	Action string
}

// DefaultBindings is the built-in binding table.
func DefaultBindings() []Binding {
	return []Binding{
		{Key: "j", Action: "next"},
		{Key: "k", Action: "previous"},
		{Key: ":", Action: "colon"},
		{Key: "C-g", Action: "info"},
	}
}

// Keymap is the resolved binding table. It is immutable once built.
type Keymap struct {
	order   []keys.Token
	actions map[keys.Token]Action
}

// NewKeymap resolves every declaration. Any bad key name, unknown action,
// or two names landing on the same token fails the whole table with a
// *keys.ConfigError.
func NewKeymap(bindings []Binding) (*Keymap, error) {
	km := &Keymap{actions: make(map[keys.Token]Action, len(bindings))}
	for _, b := range bindings {
		tok, err := keys.Resolve(b.Key)
		if err != nil {
			return nil, err
		}
		action, ok := ParseAction(b.Action)
		if !ok {
			return nil, &keys.ConfigError{Name: b.Key, Reason: fmt.Sprintf("unknown action %q", b.Action)}
		}
		if prev, dup := km.actions[tok]; dup {
			return nil, &keys.ConfigError{Name: b.Key, Reason: fmt.Sprintf("%s is already bound to %s", tok, prev)}
		}
		km.actions[tok] = action
		km.order = append(km.order, tok)
	}
	return km, nil
}

// Lookup returns the action bound to tok.
func (k *Keymap) Lookup(tok keys.Token) (Action, bool) {
	a, ok := k.actions[tok]
	return a, ok
}

// Len returns the number of bound keys.
func (k *Keymap) Len() int { return len(k.order) }

// Describe lists the bindings in declaration order as "key = action".
func (k *Keymap) Describe() []string {
	lines := make([]string, 0, len(k.order))
	for _, tok := range k.order {
		lines = append(lines, tok.String()+" = "+k.actions[tok].String())
	}
	return lines
}

// Listing is the built-in content: one line per bound key.
func (k *Keymap) Listing() content.Provider {
	return content.Slice(k.Describe())
}
