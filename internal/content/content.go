// Package content defines the source of lines shown in the viewport.
package content

import "iter"

// Provider supplies displayable lines.
//
// Lines yields lines starting at the 0-based offset from. Each call starts
// a fresh sequence. An offset at or past the end yields nothing. Count
// reports the current total and is only used for informational messages.
type Provider interface {
	Lines(from int) iter.Seq[string]
	Count() int
}

// Slice is a Provider over a fixed list of lines.
type Slice []string

// Lines implements Provider.
func (s Slice) Lines(from int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if from < 0 {
			from = 0
		}
		for i := from; i < len(s); i++ {
			if !yield(s[i]) {
				return
			}
		}
	}
}

// Count implements Provider.
func (s Slice) Count() int { return len(s) }

// Func adapts a function returning the current lines into a Provider, so
// callers can expose content that changes between renders.
type Func func() []string

// Lines implements Provider.
func (f Func) Lines(from int) iter.Seq[string] {
	return Slice(f()).Lines(from)
}

// Count implements Provider.
func (f Func) Count() int { return len(f()) }
