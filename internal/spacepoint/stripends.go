package spacepoint

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/strip.report/internal/geom"
	"github.com/banshee-data/strip.report/internal/strip"
)

// StripSegment is the physical extent of a cluster's strip in global
// coordinates: its two endpoints along the elongated direction.
type StripSegment struct {
	Top    r3.Vec
	Bottom r3.Vec
}

// endsOfStrip resolves the strip segment of a single hit. The local
// axis with the larger bin width is the strip's long direction: the
// short dimension is held at its bin midpoint while the long
// dimension's two boundaries give the endpoints, which are then
// transformed to the global frame.
func endsOfStrip(h *strip.Hit) StripSegment {
	binsX, binsY := h.Surface.Segmentation().Binning()
	binX, binY := strip.BinOf(h)

	var topLocal, bottomLocal r2.Vec
	if binsX.Width(binX) < binsY.Width(binY) {
		mid := binsX.Center(binX)
		topLocal = r2.Vec{X: mid, Y: binsY.UpperEdge(binY)}
		bottomLocal = r2.Vec{X: mid, Y: binsY.LowerEdge(binY)}
	} else {
		mid := binsY.Center(binY)
		topLocal = r2.Vec{X: binsX.LowerEdge(binX), Y: mid}
		bottomLocal = r2.Vec{X: binsX.UpperEdge(binX), Y: mid}
	}

	return StripSegment{
		Top:    h.Surface.LocalToGlobal(topLocal),
		Bottom: h.Surface.LocalToGlobal(bottomLocal),
	}
}

// endsOfCluster resolves the representative segment of a cluster: the
// segment of its hit, or the componentwise mean of both hits' segments
// when a secondary is present.
func endsOfCluster(c Cluster) StripSegment {
	ends := endsOfStrip(c.Primary)
	if c.Secondary != nil {
		ends2 := endsOfStrip(c.Secondary)
		ends.Top = geom.Midpoint(ends.Top, ends2.Top)
		ends.Bottom = geom.Midpoint(ends.Bottom, ends2.Bottom)
	}
	return ends
}
