package strip

import (
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/strip.report/internal/geom"
)

// CartesianSegmentation is a rectangular grid of bins along the two
// local axes of a planar sensor. For a strip sensor one axis is finely
// binned (the strip pitch) and the other has a single bin spanning the
// strip length.
type CartesianSegmentation struct {
	X BinningData
	Y BinningData
}

// Binning implements Segmentation.
func (s CartesianSegmentation) Binning() (BinningData, BinningData) {
	return s.X, s.Y
}

// PlanarModule is a flat strip sensor placed in the global frame by a
// rigid pose. The local frame is the sensor plane at z=0.
type PlanarModule struct {
	id      string
	seg     CartesianSegmentation
	pose    geom.Transform
	invPose geom.Transform
}

// NewPlanarModule builds a module from its segmentation and pose. The
// inverse pose is precomputed; the pose must be rigid.
func NewPlanarModule(id string, seg CartesianSegmentation, pose geom.Transform) *PlanarModule {
	return &PlanarModule{
		id:      id,
		seg:     seg,
		pose:    pose,
		invPose: pose.Inverse(),
	}
}

// ID returns the module identifier.
func (m *PlanarModule) ID() string { return m.id }

// Segmentation implements Surface.
func (m *PlanarModule) Segmentation() Segmentation { return m.seg }

// LocalToGlobal implements Surface.
func (m *PlanarModule) LocalToGlobal(local r2.Vec) r3.Vec {
	return m.pose.ApplyPlanar(local)
}

// GlobalToLocal projects a global point into the sensor plane. The
// dropped local z component is the point's distance from the plane.
func (m *PlanarModule) GlobalToLocal(global r3.Vec) r2.Vec {
	v := m.invPose.Apply(global)
	return r2.Vec{X: v.X, Y: v.Y}
}

// Pose returns the module's rigid pose.
func (m *PlanarModule) Pose() geom.Transform { return m.pose }
