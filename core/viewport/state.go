// Package viewport maps zoom/scroll state onto a window of trace samples and
// hit-tests pixels against base peaks.
//
// State is a value: every transition returns a new State and never touches
// the receiver, so a render of (record, state) is reproducible.
package viewport

import (
	"math"
	"sort"

	"chromaview/core/chromatogram"
)

// Zoom and scroll bounds.
const (
	MinZoom     = 0.5
	MaxZoom     = 20
	DefaultZoom = 1

	DefaultCanvasWidth      = 1200
	DefaultQualityThreshold = 20
)

// Range is a 1-based inclusive base range.
type Range struct {
	Start, End int
}

// State is the ephemeral viewer state.
type State struct {
	Zoom             float64
	Scroll           float64
	Selected         *int
	Hovered          *int
	Edited           map[int]bool
	Highlight        *Range
	QualityThreshold int
	Channels         map[chromatogram.Channel]bool
}

// NewState returns the initial state: zoom 1, scrolled to the start, all
// channels visible.
func NewState() State {
	ch := make(map[chromatogram.Channel]bool, 4)
	for _, c := range chromatogram.Channels {
		ch[c] = true
	}
	return State{
		Zoom:             DefaultZoom,
		QualityThreshold: DefaultQualityThreshold,
		Channels:         ch,
		Edited:           map[int]bool{},
	}
}

// ZoomBy adds delta to the zoom, clamped to [MinZoom, MaxZoom].
func (s State) ZoomBy(delta float64) State {
	s.Zoom = clampF(s.Zoom+delta, MinZoom, MaxZoom)
	return s
}

// WithZoom sets the zoom, clamped.
func (s State) WithZoom(z float64) State {
	s.Zoom = clampF(z, MinZoom, MaxZoom)
	return s
}

// ScrollBy adds delta to the scroll fraction, clamped to [0, 1].
func (s State) ScrollBy(delta float64) State {
	s.Scroll = clampF(s.Scroll+delta, 0, 1)
	return s
}

// WithScroll sets the scroll fraction, clamped.
func (s State) WithScroll(f float64) State {
	s.Scroll = clampF(f, 0, 1)
	return s
}

// CenterOn returns the state scrolled so sample sits mid-window, as far as
// the trace bounds allow.
func (s State) CenterOn(sample, total, canvasWidth int) State {
	visible := visibleSamples(s.Zoom, canvasWidth)
	span := total - visible
	if span <= 0 {
		return s.WithScroll(0)
	}
	return s.WithScroll(float64(sample-visible/2) / float64(span))
}

// Select sets the selected base.
func (s State) Select(i int) State {
	s.Selected = &i
	return s
}

// Hover sets the hovered base.
func (s State) Hover(i int) State {
	s.Hovered = &i
	return s
}

// ClearSelection drops the selected and hovered bases. Edit marks stay.
func (s State) ClearSelection() State {
	s.Selected, s.Hovered = nil, nil
	return s
}

// MarkEdited returns a state whose edited set also holds i.
func (s State) MarkEdited(i int) State {
	edited := make(map[int]bool, len(s.Edited)+1)
	for k := range s.Edited {
		edited[k] = true
	}
	edited[i] = true
	s.Edited = edited
	return s
}

// EditedIndices lists edited bases in ascending order.
func (s State) EditedIndices() []int {
	out := make([]int, 0, len(s.Edited))
	for k := range s.Edited {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// WithHighlight sets the highlighted range; nil clears it.
func (s State) WithHighlight(r *Range) State {
	s.Highlight = r
	return s
}

// WithQualityThreshold sets the low-quality cut-off, clamped to [0, 60].
func (s State) WithQualityThreshold(q int) State {
	s.QualityThreshold = max(0, min(chromatogram.MaxQuality, q))
	return s
}

// WithChannels shows exactly the given channels.
func (s State) WithChannels(chs ...chromatogram.Channel) State {
	m := make(map[chromatogram.Channel]bool, len(chs))
	for _, c := range chs {
		m[c] = true
	}
	s.Channels = m
	return s
}

// ToggleChannel flips the visibility of one channel.
func (s State) ToggleChannel(c chromatogram.Channel) State {
	m := make(map[chromatogram.Channel]bool, 4)
	for k, v := range s.Channels {
		m[k] = v
	}
	m[c] = !m[c]
	s.Channels = m
	return s
}

// Visible reports whether channel c is drawn.
func (s State) Visible(c chromatogram.Channel) bool { return s.Channels[c] }

func clampF(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
