package strip

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"
)

// Segmentation exposes the binning of a sensitive surface. Any
// segmentation variant used with the builder implements this capability
// interface; there is no runtime type inspection anywhere downstream.
type Segmentation interface {
	// Binning returns the ordered bin boundaries along the two local axes.
	Binning() (binsX, binsY BinningData)
}

// Surface is the geometry collaborator the builder needs from a sensor:
// its segmentation and its local-to-global transform. The in-repo
// implementation is PlanarModule; a detector-description system can
// provide its own.
type Surface interface {
	Segmentation() Segmentation
	LocalToGlobal(local r2.Vec) r3.Vec
}

// Hit is an immutable strip measurement: a local 2D coordinate on a
// surface. Hits are owned by the caller; the builder holds only
// non-owning references. The local coordinate must lie within the range
// covered by the surface's segmentation.
type Hit struct {
	Surface Surface
	Local   r2.Vec
}

// GlobalPosition returns the hit position in the global frame.
func (h *Hit) GlobalPosition() r3.Vec {
	return h.Surface.LocalToGlobal(h.Local)
}
