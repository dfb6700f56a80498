package terminal

import (
	"bytes"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"
)

// Screen is the full terminal surface returned by Session.Enter.
type Screen struct {
	Rows int
	Cols int

	out  io.Writer
	keys *KeyReader
}

// NewScreen wraps already-prepared terminal streams. Session.Enter uses it
// after switching to raw mode; tests use it directly over buffers.
func NewScreen(in io.Reader, out io.Writer, rows, cols int) *Screen {
	return &Screen{Rows: rows, Cols: cols, out: out, keys: NewKeyReader(in)}
}

// Keys returns the blocking key reader for the terminal input.
func (s *Screen) Keys() *KeyReader {
	return s.keys
}

// Region carves a full-width band of height rows starting at row top
// (0-based). The band is clipped to the screen.
func (s *Screen) Region(top, height int) *Region {
	if top < 0 {
		top = 0
	}
	if top+height > s.Rows {
		height = s.Rows - top
	}
	if height < 0 {
		height = 0
	}
	r := &Region{top: top, height: height, width: s.Cols, out: s.out}
	r.term = termenv.NewOutput(&r.buf, termenv.WithProfile(termenv.Ascii))
	return r
}

// Region is a rectangular band of the screen. Drawing is buffered until
// Refresh, which writes the whole batch in one call.
type Region struct {
	top    int
	height int
	width  int

	out  io.Writer
	buf  bytes.Buffer
	term *termenv.Output
}

// Height returns the number of rows in the region.
func (r *Region) Height() int { return r.height }

// Width returns the number of columns in the region.
func (r *Region) Width() int { return r.width }

// WriteLine draws text at column 0 of row (relative to the region) and
// clears whatever was to its right. Text wider than the region is cut.
// Rows outside the region are ignored.
func (r *Region) WriteLine(row int, text string) {
	if row < 0 || row >= r.height {
		return
	}
	r.term.MoveCursor(r.top+row+1, 1)
	r.buf.WriteString(runewidth.Truncate(Printable(text), r.width, ""))
	r.term.ClearLineRight()
}

// Clear blanks every row of the region.
func (r *Region) Clear() {
	for row := 0; row < r.height; row++ {
		r.term.MoveCursor(r.top+row+1, 1)
		r.term.ClearLine()
	}
}

// Refresh flushes pending drawing to the terminal.
func (r *Region) Refresh() error {
	if r.buf.Len() == 0 {
		return nil
	}
	_, err := r.out.Write(r.buf.Bytes())
	r.buf.Reset()
	return err
}

// Printable replaces control characters with caret notation (BEL becomes
// "^G", DEL becomes "^?") so typed text can never emit terminal controls.
func Printable(s string) string {
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	var b strings.Builder
	for _, c := range s {
		switch {
		case c == 0x7F:
			b.WriteString("^?")
		case c < 0x20:
			b.WriteByte('^')
			b.WriteRune(c + '@')
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

func isControl(c rune) bool {
	return c < 0x20 || c == 0x7F
}
