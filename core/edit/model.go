// Package edit is the selection and base-editing model over one record.
package edit

import (
	"errors"
	"fmt"

	"chromaview/core/chromatogram"
	"chromaview/core/viewport"
)

var (
	ErrNotSelected     = errors.New("base is not selected")
	ErrInvalidSymbol   = errors.New("invalid base symbol")
	ErrIndexOutOfRange = errors.New("base index out of range")
	ErrInvalidRange    = errors.New("invalid highlight range")
)

// Model pairs a record with its view state. Methods return a new Model; on
// error the receiver is returned unchanged.
type Model struct {
	Record *chromatogram.Record
	State  viewport.State
}

// New starts a session on rec with the initial view state.
func New(rec *chromatogram.Record) Model {
	return Model{Record: rec, State: viewport.NewState()}
}

func (m Model) checkIndex(i int) error {
	if i < 0 || i >= m.Record.SequenceLength {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, m.Record.SequenceLength)
	}
	return nil
}

// Select makes base i the selection.
func (m Model) Select(i int) (Model, error) {
	if err := m.checkIndex(i); err != nil {
		return m, err
	}
	m.State = m.State.Select(i)
	return m, nil
}

// Edit replaces base i with symbol. Base i must be the current selection.
// Quality and peak position of the base are kept.
func (m Model) Edit(i int, symbol byte) (Model, error) {
	if err := m.checkIndex(i); err != nil {
		return m, err
	}
	if m.State.Selected == nil || *m.State.Selected != i {
		return m, fmt.Errorf("%w: %d", ErrNotSelected, i)
	}
	if symbol >= 'a' && symbol <= 'z' {
		symbol -= 'a' - 'A'
	}
	if !chromatogram.IsBaseSymbol(symbol) {
		return m, fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}
	rec, err := m.Record.WithBaseCall(i, symbol)
	if err != nil {
		return m, err
	}
	m.Record = rec
	m.State = m.State.MarkEdited(i)
	return m, nil
}

// ClearSelection drops selection and hover.
func (m Model) ClearSelection() Model {
	m.State = m.State.ClearSelection()
	return m
}

// Highlight validates a 1-based inclusive range, stores it and returns the
// covered sub-sequence.
func (m Model) Highlight(start, end int) (Model, string, error) {
	if start < 1 || start > end || end > m.Record.SequenceLength {
		return m, "", fmt.Errorf("%w: %d-%d for length %d", ErrInvalidRange, start, end, m.Record.SequenceLength)
	}
	sub, err := m.Record.Subsequence(start, end)
	if err != nil {
		return m, "", err
	}
	m.State = m.State.WithHighlight(&viewport.Range{Start: start, End: end})
	return m, sub, nil
}

// ClearHighlight removes the highlighted range.
func (m Model) ClearHighlight() Model {
	m.State = m.State.WithHighlight(nil)
	return m
}

// HighlightFASTA exports the highlighted range as
// ">{file}:{start}-{end}\n{bases}".
func (m Model) HighlightFASTA() (string, error) {
	h := m.State.Highlight
	if h == nil {
		return "", fmt.Errorf("%w: nothing highlighted", ErrInvalidRange)
	}
	sub, err := m.Record.Subsequence(h.Start, h.End)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return fmt.Sprintf(">%s:%d-%d\n%s", m.Record.FileName, h.Start, h.End, sub), nil
}

// Click selects the base nearest pixel x in the current window.
func (m Model) Click(mapper viewport.Mapper, x, radius float64) Model {
	m.State = m.State.Click(mapper, m.Record.PeakLocations, x, radius)
	return m
}

// Hover previews the base nearest pixel x in the current window.
func (m Model) Hover(mapper viewport.Mapper, x, radius float64) Model {
	m.State = m.State.HoverAt(mapper, m.Record.PeakLocations, x, radius)
	return m
}

// Mapper builds the sample↔pixel mapper for the current state.
func (m Model) Mapper(canvasWidth int) viewport.Mapper {
	return viewport.NewMapper(m.State, m.Record.MaxTraceLength(), canvasWidth)
}
