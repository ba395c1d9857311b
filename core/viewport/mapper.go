package viewport

import "math"

// Mapper converts between trace-sample indices and canvas pixels for one
// State. It is cheap to build; make a new one whenever the state changes.
type Mapper struct {
	Start, End  int
	Total       int
	CanvasWidth int
}

func visibleSamples(zoom float64, canvasWidth int) int {
	return int(math.Floor(float64(canvasWidth) / zoom))
}

// NewMapper computes the visible window of total samples for s. A
// non-positive canvasWidth means DefaultCanvasWidth.
func NewMapper(s State, total, canvasWidth int) Mapper {
	if canvasWidth <= 0 {
		canvasWidth = DefaultCanvasWidth
	}
	total = max(total, 0)
	zoom := s.Zoom
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	visible := visibleSamples(zoom, canvasWidth)
	scroll := clampF(s.Scroll, 0, 1)
	start := int(math.Floor(scroll * float64(max(0, total-visible))))
	end := min(start+visible, total)
	start = max(0, min(start, total))
	end = max(start, min(end, total))
	return Mapper{Start: start, End: end, Total: total, CanvasWidth: canvasWidth}
}

// Empty reports whether the window holds no samples; pixel transforms are
// undefined then.
func (m Mapper) Empty() bool { return m.End == m.Start }

// Contains reports whether sample i lies in [Start, End].
func (m Mapper) Contains(i int) bool { return i >= m.Start && i <= m.End }

// ToPixelX maps sample i to an x coordinate. ok is false for an empty window.
func (m Mapper) ToPixelX(i int) (x float64, ok bool) {
	if m.Empty() {
		return 0, false
	}
	return float64(i-m.Start) / float64(m.End-m.Start) * float64(m.CanvasWidth), true
}

// FromPixelX maps an x coordinate back to the nearest sample inside the
// window.
func (m Mapper) FromPixelX(x float64) (int, bool) {
	if m.Empty() {
		return 0, false
	}
	i := m.Start + int(math.Round(x/float64(m.CanvasWidth)*float64(m.End-m.Start)))
	return max(m.Start, min(m.End, i)), true
}
