// Package smooth implements the Gaussian-weighted moving average applied to
// trace channels after decoding.
package smooth

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"chromaview/core/chromatogram"
)

// Window sizes used by the decoders and the mock generator.
const (
	SCFWindow  = 3
	MockWindow = 9
)

// Kernel returns the normalized weights for window: w(j) = exp(-j²/(2σ²))
// with σ = half/2, for j in [-half, half]. It returns nil when half is 0.
func Kernel(window int) []float64 {
	half := window / 2
	if half <= 0 {
		return nil
	}
	sigma := float64(half) / 2
	w := make([]float64, 2*half+1)
	for j := -half; j <= half; j++ {
		w[j+half] = math.Exp(-float64(j*j) / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(w), w)
	return w
}

// Smooth returns a smoothed copy of samples. Indices within half a window of
// either edge are copied unchanged.
func Smooth(samples []float64, window int) []float64 {
	out := append([]float64(nil), samples...)
	w := Kernel(window)
	if w == nil {
		return out
	}
	half := len(w) / 2
	for i := half; i < len(samples)-half; i++ {
		out[i] = floats.Dot(w, samples[i-half:i+half+1])
	}
	return out
}

// Channels smooths every channel of traces in place.
func Channels(traces map[chromatogram.Channel][]float64, window int) {
	for ch, s := range traces {
		traces[ch] = Smooth(s, window)
	}
}
