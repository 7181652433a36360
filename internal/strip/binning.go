package strip

import "sort"

// BinningData holds the ordered bin boundaries along one local axis.
// n+1 boundaries describe n bins; bin i covers
// [Boundaries[i], Boundaries[i+1]).
type BinningData struct {
	Boundaries []float64
}

// UniformBinning returns n equal-width bins covering [min, max].
func UniformBinning(min, max float64, n int) BinningData {
	boundaries := make([]float64, n+1)
	width := (max - min) / float64(n)
	for i := 0; i <= n; i++ {
		boundaries[i] = min + float64(i)*width
	}
	// Avoid accumulation error on the upper edge.
	boundaries[n] = max
	return BinningData{Boundaries: boundaries}
}

// Bins returns the number of bins.
func (b BinningData) Bins() int {
	return len(b.Boundaries) - 1
}

// SearchLocal returns the bin containing x. A value on a boundary belongs
// to the bin starting there. Out-of-range coordinates are clamped; the
// caller guarantees in-range input.
func (b BinningData) SearchLocal(x float64) int {
	i := sort.SearchFloat64s(b.Boundaries, x)
	if i == len(b.Boundaries) || b.Boundaries[i] != x {
		i--
	}
	if i < 0 {
		return 0
	}
	if i >= b.Bins() {
		return b.Bins() - 1
	}
	return i
}

// LowerEdge returns the lower boundary of bin i.
func (b BinningData) LowerEdge(i int) float64 {
	return b.Boundaries[i]
}

// UpperEdge returns the upper boundary of bin i.
func (b BinningData) UpperEdge(i int) float64 {
	return b.Boundaries[i+1]
}

// Width returns the width of bin i.
func (b BinningData) Width(i int) float64 {
	return b.Boundaries[i+1] - b.Boundaries[i]
}

// Center returns the midpoint of bin i.
func (b BinningData) Center(i int) float64 {
	return (b.Boundaries[i] + b.Boundaries[i+1]) / 2
}

// BinOf locates the integer bin coordinates of a hit within its
// surface's segmentation, searching each axis independently.
func BinOf(h *Hit) (binX, binY int) {
	bx, by := h.Surface.Segmentation().Binning()
	return bx.SearchLocal(h.Local.X), by.SearchLocal(h.Local.Y)
}
