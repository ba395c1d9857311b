package viewport

import "math"

// DefaultHitRadius is how close, in pixels, a click must land to a peak.
const DefaultHitRadius = 50

// NearestBase returns the base whose peak is closest to pixel x among the
// peaks inside the window, provided it is within radius pixels.
func NearestBase(m Mapper, peaks []int, x, radius float64) (int, bool) {
	if m.Empty() {
		return 0, false
	}
	best, bestDist := -1, math.Inf(1)
	for i, p := range peaks {
		if !m.Contains(p) {
			continue
		}
		px, _ := m.ToPixelX(p)
		if d := math.Abs(x - px); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 || bestDist >= radius {
		return 0, false
	}
	return best, true
}

// Click selects the base nearest x, or clears the selection on a miss.
func (s State) Click(m Mapper, peaks []int, x, radius float64) State {
	if i, ok := NearestBase(m, peaks, x, radius); ok {
		return s.Select(i)
	}
	s.Selected = nil
	return s
}

// HoverAt previews the base nearest x, or clears the hover on a miss.
func (s State) HoverAt(m Mapper, peaks []int, x, radius float64) State {
	if i, ok := NearestBase(m, peaks, x, radius); ok {
		return s.Hover(i)
	}
	s.Hovered = nil
	return s
}
