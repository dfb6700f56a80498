package keys

import (
	"fmt"
	"unicode"
)

// Token identifies one input event. Character tokens hold the code point,
// control tokens hold the control code the terminal sends (Ctrl+G = 0x07),
// and extended tokens sit above the Unicode range.
type Token int32

const (
	// KeyEnter is the confirm key. Raw terminals send carriage return;
	// the reader normalises it to line feed.
	KeyEnter Token = '\n'
	KeyTab   Token = '\t'
	KeyEsc   Token = 0x1B
	KeySpace Token = ' '
	KeyDel   Token = 0x7F

	// KeyCancel aborts colon entry.
	KeyCancel Token = 'G' & 0x1F
)

const extendedBase Token = unicode.MaxRune + 1

// Extended keys decoded from escape sequences.
const (
	KeyUp Token = extendedBase + iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPgUp
	KeyPgDn
)

// Ctrl returns the control token for an ASCII letter, case-insensitively.
func Ctrl(letter byte) Token {
	return Token(letter & 0x1F)
}

// Char returns the token for a literal character.
func Char(r rune) Token {
	return Token(r)
}

// IsControl reports whether t is a C0 control code.
func (t Token) IsControl() bool {
	return t >= 0 && t < 0x20
}

// IsExtended reports whether t is a decoded extended key.
func (t Token) IsExtended() bool {
	return t >= extendedBase
}

// Rune returns the character t carries. Extended keys carry none.
func (t Token) Rune() (rune, bool) {
	if t < 0 || t.IsExtended() {
		return 0, false
	}
	return rune(t), true
}

// String returns the binding name for t, the form Resolve accepts.
func (t Token) String() string {
	if name, ok := tokenNames[t]; ok {
		return "<" + name + ">"
	}
	if t >= 1 && t <= 26 {
		return "C-" + string(rune('a'+t-1))
	}
	if r, ok := t.Rune(); ok && unicode.IsPrint(r) {
		return string(r)
	}
	return fmt.Sprintf("0x%02x", int32(t))
}
