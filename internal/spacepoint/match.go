package spacepoint

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/strip.report/internal/geom"
	"github.com/banshee-data/strip.report/internal/strip"
)

// differenceOfHits scores how compatible two cluster positions are with
// a common track from the configured vertex. It returns -1 if the
// points are further apart than DiffDist, or if the squared polar-angle
// or azimuth difference about the vertex exceeds its gate; otherwise it
// returns the sum of the two squared angular differences.
func differenceOfHits(pos1, pos2 r3.Vec, cfg *Config) float64 {
	if r3.Norm(r3.Sub(pos1, pos2)) > cfg.DiffDist {
		return -1
	}

	d1 := r3.Sub(pos1, cfg.Vertex)
	d2 := r3.Sub(pos2, cfg.Vertex)

	dTheta := geom.Theta(d1) - geom.Theta(d2)
	diffTheta2 := dTheta * dTheta
	if diffTheta2 > cfg.DiffTheta2 {
		return -1
	}

	dPhi := geom.Phi(d1) - geom.Phi(d2)
	diffPhi2 := dPhi * dPhi
	if diffPhi2 > cfg.DiffPhi2 {
		return -1
	}

	return diffTheta2 + diffPhi2
}

// AddHits clusters the hits of both surfaces and appends one candidate
// pair per front cluster to points: the back cluster with the smallest
// non-negative score, ties keeping the first encountered. Front
// clusters with no valid back candidate contribute nothing. Empty input
// on either side is a no-op. A nil cfg selects DefaultConfig.
func AddHits(points []SpacePoint, front, back []*strip.Hit, cfg *Config) []SpacePoint {
	if len(front) == 0 || len(back) == 0 {
		return points
	}
	cfg = orDefault(cfg)

	clustersFront := ClusterHits(front, cfg.ClusterFrontHits)
	if len(clustersFront) == 0 {
		return points
	}
	clustersBack := ClusterHits(back, cfg.ClusterBackHits)
	if len(clustersBack) == 0 {
		return points
	}

	backPositions := make([]r3.Vec, len(clustersBack))
	for i, c := range clustersBack {
		backPositions[i] = c.Position()
	}

	for _, cf := range clustersFront {
		frontPos := cf.Position()
		diffMin := math.MaxFloat64
		best := -1
		for i, backPos := range backPositions {
			diff := differenceOfHits(frontPos, backPos, cfg)
			if diff >= 0 && diff < diffMin {
				diffMin = diff
				best = i
			}
		}
		if best >= 0 {
			points = append(points, SpacePoint{Front: cf, Back: clustersBack[best]})
		}
	}

	return points
}
