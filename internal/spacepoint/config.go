package spacepoint

import "gonum.org/v1/gonum/spatial/r3"

// Default gating thresholds and tolerances. Distances are in the same
// length unit as the detector geometry; angles are in radians.
const (
	// DefaultDiffDist is the maximum Euclidean distance between a front
	// and a back cluster for them to be considered at all.
	DefaultDiffDist = 100.0
	// DefaultDiffTheta2 is the maximum squared polar-angle difference.
	DefaultDiffTheta2 = 1.0
	// DefaultDiffPhi2 is the maximum squared azimuth difference.
	DefaultDiffPhi2 = 1.0
	// DefaultStripLengthTolerance widens the accepted parameter range
	// |m| <= 1 on a strip to 1 + tolerance.
	DefaultStripLengthTolerance = 0.01
	// DefaultStripLengthGapTolerance is the absolute length by which a
	// solution may overshoot the strip ends and still be recovered.
	DefaultStripLengthGapTolerance = 0.01
)

// Config is the read-only parameter set of the builder. It is passed by
// reference into stateless routines and is safe to share between
// concurrent invocations on disjoint hit batches.
type Config struct {
	// Vertex is the assumed particle origin used by the angular match
	// and the vertex-based solve.
	Vertex r3.Vec
	// DiffDist gates the Euclidean distance between matched clusters.
	DiffDist float64
	// DiffTheta2 gates the squared polar-angle difference about Vertex.
	DiffTheta2 float64
	// DiffPhi2 gates the squared azimuth difference about Vertex.
	DiffPhi2 float64
	// UsePerpProj selects the vertex-free perpendicular-projection solve,
	// intended for cosmic data with no known origin.
	UsePerpProj bool
	// StripLengthTolerance relaxes the strip-parameter acceptance limit.
	StripLengthTolerance float64
	// StripLengthGapTolerance bounds the recovery of near-miss solutions;
	// zero or negative disables recovery.
	StripLengthGapTolerance float64
	// ClusterFrontHits and ClusterBackHits enable adjacent-bin
	// aggregation per side. Disabled, every hit is its own cluster.
	ClusterFrontHits bool
	ClusterBackHits  bool
}

// DefaultConfig returns the configuration used when a caller passes nil.
func DefaultConfig() *Config {
	return &Config{
		DiffDist:                DefaultDiffDist,
		DiffTheta2:              DefaultDiffTheta2,
		DiffPhi2:                DefaultDiffPhi2,
		StripLengthTolerance:    DefaultStripLengthTolerance,
		StripLengthGapTolerance: DefaultStripLengthGapTolerance,
		ClusterFrontHits:        true,
		ClusterBackHits:         true,
	}
}

func orDefault(cfg *Config) *Config {
	if cfg == nil {
		return DefaultConfig()
	}
	return cfg
}
