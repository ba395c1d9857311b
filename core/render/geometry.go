// Package render computes the geometry a drawing surface needs to show a
// record: channel polylines, base labels and highlight rectangles, all in
// canvas pixels. It draws nothing itself.
package render

import (
	"chromaview/core/chromatogram"
	"chromaview/core/viewport"
)

// Options size the canvas.
type Options struct {
	Width  int // DefaultCanvasWidth when <= 0
	Height int // DefaultHeight when <= 0
}

// DefaultHeight is the plot height in pixels.
const DefaultHeight = 300

// Point is a canvas coordinate; y grows downwards.
type Point struct{ X, Y float64 }

// Polyline is one channel's visible samples.
type Polyline struct {
	Channel chromatogram.Channel
	Points  []Point
}

// Label marks one base call at its peak.
type Label struct {
	Index      int
	X          float64
	Symbol     byte
	Quality    int
	LowQuality bool
	Edited     bool
	Selected   bool
	Hovered    bool
}

// Rect is a highlight band spanning the full plot height.
type Rect struct {
	X, Width float64
	Start    int // 1-based base range it covers
	End      int
}

// Geometry is everything a renderer needs for one frame.
type Geometry struct {
	Width, Height int
	Start, End    int
	Polylines     []Polyline
	Labels        []Label
	Highlights    []Rect
}

// Build lays out rec under state. It is a pure function of its inputs.
func Build(rec *chromatogram.Record, state viewport.State, opts Options) Geometry {
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	m := viewport.NewMapper(state, rec.MaxTraceLength(), opts.Width)
	g := Geometry{Width: m.CanvasWidth, Height: opts.Height, Start: m.Start, End: m.End}
	if m.Empty() {
		return g
	}

	peak := windowMax(rec, state, m)
	for _, ch := range chromatogram.Channels {
		if !state.Visible(ch) {
			continue
		}
		g.Polylines = append(g.Polylines, Polyline{Channel: ch, Points: polyline(rec.Traces[ch], m, peak, opts.Height)})
	}

	for i, p := range rec.PeakLocations {
		if !m.Contains(p) {
			continue
		}
		x, _ := m.ToPixelX(p)
		g.Labels = append(g.Labels, Label{
			Index:      i,
			X:          x,
			Symbol:     rec.BaseCalls[i],
			Quality:    rec.Quality[i],
			LowQuality: rec.Quality[i] < state.QualityThreshold,
			Edited:     state.Edited[i],
			Selected:   state.Selected != nil && *state.Selected == i,
			Hovered:    state.Hovered != nil && *state.Hovered == i,
		})
	}

	if h := state.Highlight; h != nil {
		if r, ok := highlight(rec, m, *h); ok {
			g.Highlights = append(g.Highlights, r)
		}
	}
	return g
}

// windowMax is the tallest visible sample, used to scale y.
func windowMax(rec *chromatogram.Record, state viewport.State, m viewport.Mapper) float64 {
	top := 0.0
	for ch, s := range rec.Traces {
		if !state.Visible(ch) {
			continue
		}
		for i := m.Start; i < m.End && i < len(s); i++ {
			top = max(top, s[i])
		}
	}
	return top
}

func polyline(s []float64, m viewport.Mapper, top float64, height int) []Point {
	end := min(m.End, len(s))
	if end <= m.Start {
		return nil
	}
	pts := make([]Point, 0, end-m.Start)
	h := float64(height)
	for i := m.Start; i < end; i++ {
		x, _ := m.ToPixelX(i)
		y := h
		if top > 0 {
			y = h - s[i]/top*h
		}
		pts = append(pts, Point{X: x, Y: y})
	}
	return pts
}

// highlight spans from the first to the last highlighted peak, clipped to
// the window.
func highlight(rec *chromatogram.Record, m viewport.Mapper, r viewport.Range) (Rect, bool) {
	if r.Start < 1 || r.End > len(rec.PeakLocations) || r.Start > r.End {
		return Rect{}, false
	}
	lo := max(rec.PeakLocations[r.Start-1], m.Start)
	hi := min(rec.PeakLocations[r.End-1], m.End)
	if lo > hi {
		return Rect{}, false
	}
	x0, _ := m.ToPixelX(lo)
	x1, _ := m.ToPixelX(hi)
	return Rect{X: x0, Width: x1 - x0, Start: r.Start, End: r.End}, true
}
