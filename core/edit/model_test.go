package edit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromaview/core/chromatogram"
)

func record() *chromatogram.Record {
	tr := map[chromatogram.Channel][]float64{chromatogram.A: make([]float64, 1200)}
	return chromatogram.New("r.scf", chromatogram.FormatSCF, tr,
		[]byte("ACGTA"), []int{11, 22, 33, 44, 55}, []int{100, 300, 500, 700, 900})
}

func TestEditSelected(t *testing.T) {
	m, err := New(record()).Select(2)
	require.NoError(t, err)
	m, err = m.Edit(2, 'g')
	require.NoError(t, err)

	assert.Equal(t, byte('G'), m.Record.BaseCalls[2])
	assert.Equal(t, "ACGTA", m.Record.Sequence, "G over G is still a recorded edit")
	assert.True(t, m.State.Edited[2])

	m, _ = m.Select(0)
	m, err = m.Edit(0, 'G')
	require.NoError(t, err)
	assert.Equal(t, "GCGTA", m.Record.Sequence)
	assert.Equal(t, 33, m.Record.Quality[2])
	assert.Equal(t, []int{11, 22, 33, 44, 55}, m.Record.Quality)
	assert.Equal(t, []int{100, 300, 500, 700, 900}, m.Record.PeakLocations)
	assert.Equal(t, []int{0, 2}, m.State.EditedIndices())
	require.NoError(t, m.Record.Validate())
}

func TestEditRequiresSelection(t *testing.T) {
	m := New(record())
	_, err := m.Edit(1, 'A')
	assert.True(t, errors.Is(err, ErrNotSelected))

	m, _ = m.Select(3)
	got, err := m.Edit(1, 'A')
	assert.True(t, errors.Is(err, ErrNotSelected))
	assert.Equal(t, "ACGTA", got.Record.Sequence)
	assert.Empty(t, got.State.Edited)
}

func TestEditRejectsBadInput(t *testing.T) {
	m, _ := New(record()).Select(1)
	_, err := m.Edit(1, 'X')
	assert.True(t, errors.Is(err, ErrInvalidSymbol))
	_, err = m.Edit(9, 'A')
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = m.Select(-1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
}

func TestClearSelectionKeepsEdits(t *testing.T) {
	m, _ := New(record()).Select(4)
	m, _ = m.Edit(4, 'N')
	m = m.ClearSelection()
	assert.Nil(t, m.State.Selected)
	assert.Nil(t, m.State.Hovered)
	assert.True(t, m.State.Edited[4])
	assert.Equal(t, "ACGTN", m.Record.Sequence)
}

func TestHighlight(t *testing.T) {
	m, sub, err := New(record()).Highlight(2, 4)
	require.NoError(t, err)
	assert.Equal(t, "CGT", sub)
	require.NotNil(t, m.State.Highlight)

	fa, err := m.HighlightFASTA()
	require.NoError(t, err)
	assert.Equal(t, ">r.scf:2-4\nCGT", fa)

	_, err = m.ClearHighlight().HighlightFASTA()
	assert.True(t, errors.Is(err, ErrInvalidRange))

	for _, r := range [][2]int{{0, 1}, {3, 2}, {1, 6}} {
		_, _, err := m.Highlight(r[0], r[1])
		assert.True(t, errors.Is(err, ErrInvalidRange), "%v", r)
	}
}

func TestClickThenEdit(t *testing.T) {
	m := New(record())
	mp := m.Mapper(1200) // one sample per pixel over [0,1200]
	m = m.Click(mp, 310, 50)
	require.NotNil(t, m.State.Selected)
	assert.Equal(t, 1, *m.State.Selected)

	m, err := m.Edit(1, 'T')
	require.NoError(t, err)
	assert.Equal(t, "ATGTA", m.Record.Sequence)

	m = m.Hover(mp, 880, 50)
	require.NotNil(t, m.State.Hovered)
	assert.Equal(t, 4, *m.State.Hovered)
	assert.Equal(t, 1, *m.State.Selected)
}
