package terminal

import (
	"io"
	"unicode/utf8"

	"pgr/internal/keys"
)

// KeyReader turns raw terminal bytes into key tokens, one per call.
type KeyReader struct {
	r       io.Reader
	buf     [256]byte
	pending []byte
}

// NewKeyReader reads keys from r, normally the raw-mode terminal input.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{r: r}
}

// ReadKey blocks until one complete key is available. Carriage return is
// reported as keys.KeyEnter. Escape sequences for arrows and the
// navigation block become extended tokens; other sequences are dropped.
func (k *KeyReader) ReadKey() (keys.Token, error) {
	for {
		if len(k.pending) == 0 {
			if err := k.fill(); err != nil {
				return 0, err
			}
		}
		if tok, ok := k.next(); ok {
			return tok, nil
		}
	}
}

func (k *KeyReader) fill() error {
	for {
		n, err := k.r.Read(k.buf[:])
		if n > 0 {
			k.pending = append(k.pending, k.buf[:n]...)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// next consumes one key from pending. It returns false when the bytes
// consumed were an unrecognised escape sequence.
func (k *KeyReader) next() (keys.Token, bool) {
	b := k.pending[0]
	switch {
	case b == 0x1B:
		consumed, tok, handled := decodeEscape(k.pending[1:])
		for consumed == incomplete {
			// A sequence split across reads: wait for the rest.
			if err := k.fill(); err != nil {
				k.pending = k.pending[:0]
				return 0, false
			}
			consumed, tok, handled = decodeEscape(k.pending[1:])
		}
		if !handled {
			k.pending = k.pending[1:]
			return keys.KeyEsc, true
		}
		k.pending = k.pending[1+consumed:]
		return tok, tok != 0
	case b == '\r':
		k.pending = k.pending[1:]
		return keys.KeyEnter, true
	case b < utf8.RuneSelf:
		k.pending = k.pending[1:]
		return keys.Char(rune(b)), true
	}

	// A multi-byte character split across reads: wait for the rest.
	if !utf8.FullRune(k.pending) {
		if err := k.fill(); err != nil {
			k.pending = k.pending[:0]
			return 0, false
		}
	}
	r, size := utf8.DecodeRune(k.pending)
	k.pending = k.pending[size:]
	return keys.Char(r), true
}

// incomplete is the consumed count for a sequence whose final byte has
// not arrived yet.
const incomplete = -1

// decodeEscape parses the bytes following ESC. handled is false for a
// lone ESC; tok is 0 for a complete sequence that maps to no key.
func decodeEscape(rest []byte) (consumed int, tok keys.Token, handled bool) {
	if len(rest) == 0 {
		return 0, 0, false
	}
	switch rest[0] {
	case '[':
		consumed, tok = decodeCSI(rest[1:])
		if consumed == incomplete {
			return incomplete, 0, true
		}
		return 1 + consumed, tok, true
	case 'O':
		if len(rest) < 2 {
			return incomplete, 0, true
		}
		return 2, finalKey(rest[1]), true
	}
	return 0, 0, false
}

// decodeCSI parses a CSI sequence (after ESC [). It reports incomplete
// when the bytes run out before the final byte.
func decodeCSI(rest []byte) (consumed int, tok keys.Token) {
	i := 0
	for i < len(rest) && rest[i] >= 0x30 && rest[i] <= 0x3F {
		i++
	}
	params := string(rest[:i])
	for i < len(rest) && rest[i] >= 0x20 && rest[i] <= 0x2F {
		i++
	}
	if i >= len(rest) {
		return incomplete, 0
	}

	final := rest[i]
	if final == '~' {
		return i + 1, tildeKey(params)
	}
	if params != "" && params != "1" {
		// Modified keys (shift, ctrl) are not distinguished.
		return i + 1, 0
	}
	return i + 1, finalKey(final)
}

func finalKey(final byte) keys.Token {
	switch final {
	case 'A':
		return keys.KeyUp
	case 'B':
		return keys.KeyDown
	case 'C':
		return keys.KeyRight
	case 'D':
		return keys.KeyLeft
	case 'H':
		return keys.KeyHome
	case 'F':
		return keys.KeyEnd
	}
	return 0
}

func tildeKey(params string) keys.Token {
	switch params {
	case "1", "7":
		return keys.KeyHome
	case "4", "8":
		return keys.KeyEnd
	case "5":
		return keys.KeyPgUp
	case "6":
		return keys.KeyPgDn
	}
	return 0
}
