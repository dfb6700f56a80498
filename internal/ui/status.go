package ui

// SetStatus replaces the status line and shows it immediately.
func (e *Engine) SetStatus(text string) error {
	e.statusText = text
	e.status.WriteLine(0, text)
	return e.status.Refresh()
}

// Status returns the text currently on the status line.
func (e *Engine) Status() string {
	return e.statusText
}
