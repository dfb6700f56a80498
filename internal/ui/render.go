package ui

// Render redraws the whole viewport from the current row. Lines are
// taken from the content provider starting at offset Row-1; rows the
// content does not reach are blanked so nothing stale survives a scroll.
func (e *Engine) Render() error {
	rows := e.view.Height()
	y := 0
	if rows > 0 {
		for line := range e.content.Lines(e.Row - 1) {
			e.view.WriteLine(y, line)
			y++
			if y == rows {
				break
			}
		}
	}
	for ; y < rows; y++ {
		e.view.WriteLine(y, "")
	}
	return e.view.Refresh()
}
