package smooth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"chromaview/core/chromatogram"
)

func TestLengthPreserved(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 17} {
		x := make([]float64, n)
		for i := range x {
			x[i] = float64(i * i)
		}
		for w := 1; w <= 11; w++ {
			assert.Len(t, Smooth(x, w), n, "n=%d w=%d", n, w)
		}
	}
}

func TestConstantSignalUnchanged(t *testing.T) {
	x := []float64{7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7}
	got := Smooth(x, 9)
	for i := range got {
		assert.InDelta(t, 7, got[i], 1e-9)
	}
}

func TestSpikeSpreadsSymmetrically(t *testing.T) {
	x := []float64{0, 0, 0, 0, 100, 0, 0, 0, 0}
	got := Smooth(x, 3)
	assert.Less(t, got[4], 100.0)
	assert.Greater(t, got[3], 0.0)
	assert.InDelta(t, got[3], got[5], 1e-9)
	assert.Equal(t, 0.0, got[0], "edge copied")
	assert.Equal(t, 0.0, got[8], "edge copied")
}

func TestEdgesCopied(t *testing.T) {
	x := []float64{5, 1, 9, 3, 8, 2, 6, 4, 7}
	got := Smooth(x, 9)
	half := 4
	for i := 0; i < half; i++ {
		assert.Equal(t, x[i], got[i])
		assert.Equal(t, x[len(x)-1-i], got[len(got)-1-i])
	}
}

func TestKernelIsGaussian(t *testing.T) {
	w := Kernel(3)
	assert.Len(t, w, 3)
	// σ = 0.5 so w(±1)/w(0) = exp(-2).
	assert.InDelta(t, 0.1353352832, w[0]/w[1], 1e-9)
	assert.InDelta(t, 1, w[0]+w[1]+w[2], 1e-12)
	assert.Nil(t, Kernel(1))
	assert.Len(t, Kernel(2), 3)
}

func TestSmallWindowIsCopy(t *testing.T) {
	x := []float64{1, 2, 3}
	got := Smooth(x, 1)
	assert.Equal(t, x, got)
	got[0] = 99
	assert.Equal(t, 1.0, x[0], "result must not alias input")
}

func TestChannels(t *testing.T) {
	tr := map[chromatogram.Channel][]float64{
		chromatogram.A: {0, 0, 30, 0, 0},
		chromatogram.C: {},
	}
	Channels(tr, 3)
	assert.Len(t, tr[chromatogram.A], 5)
	assert.Less(t, tr[chromatogram.A][2], 30.0)
	assert.Empty(t, tr[chromatogram.C])
}
