package keys

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const ctrlPrefix = "C-"

// tokenNames maps extended and whitespace keys to their bracketed names.
var tokenNames = map[Token]string{
	KeyUp:    "up",
	KeyDown:  "down",
	KeyLeft:  "left",
	KeyRight: "right",
	KeyHome:  "home",
	KeyEnd:   "end",
	KeyPgUp:  "pgup",
	KeyPgDn:  "pgdn",
	KeyEsc:   "esc",
	KeyEnter: "enter",
	KeyTab:   "tab",
	KeySpace: "space",
	KeyDel:   "backspace",
}

var namedTokens map[string]Token

func init() {
	namedTokens = make(map[string]Token, len(tokenNames))
	for tok, name := range tokenNames {
		namedTokens[name] = tok
	}
}

// ConfigError reports a binding declaration that cannot be turned into a
// keymap entry. It is only produced while building tables at startup.
type ConfigError struct {
	Name   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: key %q: %s", e.Name, e.Reason)
}

// Resolve translates a human-readable key name into its token.
//
//	"C-g"    control combination, letter is case-insensitive
//	"<up>"   extended key
//	"j"      single printable character
func Resolve(name string) (Token, error) {
	if name == "" {
		return 0, &ConfigError{Reason: "empty key name"}
	}

	if rest, ok := strings.CutPrefix(name, ctrlPrefix); ok {
		return resolveCtrl(name, rest)
	}

	if len(name) > 2 && name[0] == '<' && name[len(name)-1] == '>' {
		if tok, ok := namedTokens[strings.ToLower(name[1:len(name)-1])]; ok {
			return tok, nil
		}
		return 0, &ConfigError{Name: name, Reason: "unknown key name"}
	}

	r, size := utf8.DecodeRuneInString(name)
	if size != len(name) {
		return 0, &ConfigError{Name: name, Reason: "expected a single character"}
	}
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return 0, &ConfigError{Name: name, Reason: "not a printable character"}
	}
	return Char(r), nil
}

func resolveCtrl(name, rest string) (Token, error) {
	if len(rest) != 1 {
		return 0, &ConfigError{Name: name, Reason: "control prefix needs exactly one letter"}
	}
	c := rest[0]
	if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
		return 0, &ConfigError{Name: name, Reason: "control prefix needs a letter"}
	}
	return Ctrl(c), nil
}

// MustResolve is Resolve for names known to be valid at compile time.
func MustResolve(name string) Token {
	tok, err := Resolve(name)
	if err != nil {
		panic(err)
	}
	return tok
}
