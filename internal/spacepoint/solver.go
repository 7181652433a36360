package spacepoint

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// perpProjEpsilon guards the denominator of the perpendicular
// projection against near-parallel strips.
const perpProjEpsilon = 1e-6

// SpacePoint is a candidate pair of front and back clusters and, once
// the solver has run, the reconstructed 3D position. Resolved reports
// whether Position holds a computed value; a zero Position alone is
// ambiguous, since a legitimate point can sit at the origin. Resolved
// entries are skipped by subsequent solver passes.
type SpacePoint struct {
	Front    Cluster
	Back     Cluster
	Position r3.Vec
	Resolved bool
}

// spacePointParameters caches the vectors and scalars shared between
// the primary solve and the recovery step.
//
// With the front strip's top and bottom ends a and b and the back
// strip's c and d: q = a-b, r = c-d, s = a+b-2*vertex, t = c+d-2*vertex,
// qs = q x s, rt = r x t. m and n are the strip parameters of the
// solution on the front and back strip.
type spacePointParameters struct {
	q  r3.Vec
	r  r3.Vec
	s  r3.Vec
	t  r3.Vec
	qs r3.Vec
	rt r3.Vec

	m             float64
	n             float64
	limit         float64
	limitExtended float64
	qmag          float64
}

func (p *spacePointParameters) reset() {
	*p = spacePointParameters{limit: 1}
}

// calcPerpProj solves for the parameter lambda0 locating the point of
// closest approach between the two strip lines along q from a, under
// the no-vertex assumption used for cosmic data. Near-parallel lines
// cannot be resolved; the returned sentinel 1.0 lies outside the
// accepted range lambda0 <= 0 and rejects the candidate.
func calcPerpProj(a, c, q, r r3.Vec) float64 {
	ac := r3.Sub(c, a)
	qr := r3.Dot(q, r)
	denom := r3.Dot(q, q) - qr*qr

	if math.Abs(denom) > perpProjEpsilon {
		return (r3.Dot(ac, r)*qr - r3.Dot(ac, q)*r3.Dot(r, r)) / denom
	}
	return 1
}

// recoverSpacePoint attempts to salvage a solution whose strip
// parameters m and n fall just outside the acceptance limit.
//
// The limit is extended by StripLengthGapTolerance scaled to strip
// units; parameters outside even that are unrecoverable. Only an
// overshoot of m and n beyond the unit interval in the same direction
// can be corrected: the overshoot of n is projected onto the front
// strip via q.r/|q|^2, the worse of the two is taken as a shared
// correction and both parameters are moved towards zero by it. The
// recovery succeeds iff both corrected parameters satisfy the base
// limit. Geometrically the shift amounts to a small variation of the
// assumed vertex position.
func recoverSpacePoint(p *spacePointParameters, cfg *Config) bool {
	if cfg.StripLengthGapTolerance <= 0 {
		return false
	}
	p.qmag = r3.Norm(p.q)
	p.limitExtended = p.limit + cfg.StripLengthGapTolerance/p.qmag

	if math.Abs(p.m) > p.limitExtended {
		return false
	}
	// n is left at zero by the primary path when m already failed.
	if p.n == 0 {
		p.n = -r3.Dot(p.t, p.qs) / r3.Dot(p.r, p.qs)
	}
	if math.Abs(p.n) > p.limitExtended {
		return false
	}

	secOnFirstScale := r3.Dot(p.q, p.r) / (p.qmag * p.qmag)

	switch {
	case p.m > 1 && p.n > 1:
		mOvershoot := p.m - 1
		nOvershoot := (p.n - 1) * secOnFirstScale
		overshoot := math.Max(mOvershoot, nOvershoot)
		p.m -= overshoot
		p.n -= overshoot / secOnFirstScale
		return math.Abs(p.m) < p.limit && math.Abs(p.n) < p.limit
	case p.m < -1 && p.n < -1:
		mOvershoot := -(p.m + 1)
		nOvershoot := -(p.n + 1) * secOnFirstScale
		overshoot := math.Max(mOvershoot, nOvershoot)
		p.m += overshoot
		p.n += overshoot / secOnFirstScale
		return math.Abs(p.m) < p.limit && math.Abs(p.n) < p.limit
	}

	// Mixed-sign or single-sided overshoots cannot be traded off.
	return false
}

// CalculateSpacePoints attempts the geometric solve for every candidate
// pair not yet resolved, leaving unresolved entries untouched. A nil
// cfg selects DefaultConfig.
//
// In the vertex-based mode a point x on the front strip is parametrized
// as 2x = (1+m)a + (1-m)b, and the ray from the vertex through x is
// required to land on the back strip at the analogous parameter n. Both
// parameters then have the closed form
//
//	m = -s.(r x t) / q.(r x t)    n = -t.(q x s) / r.(q x s)
//
// and a hit on both strips means |m|, |n| <= 1, relaxed by
// StripLengthTolerance and, through recoverSpacePoint, by
// StripLengthGapTolerance.
//
// With UsePerpProj set the vertex is ignored and the point of closest
// approach between the strip lines is taken instead, accepting only
// lambda0 <= 0; there is no recovery in that mode.
func CalculateSpacePoints(points []SpacePoint, cfg *Config) {
	cfg = orDefault(cfg)

	var p spacePointParameters
	for i := range points {
		sp := &points[i]
		if sp.Resolved {
			continue
		}

		ends1 := endsOfCluster(sp.Front)
		ends2 := endsOfCluster(sp.Back)

		p.reset()
		p.q = r3.Sub(ends1.Top, ends1.Bottom)
		p.r = r3.Sub(ends2.Top, ends2.Bottom)

		if cfg.UsePerpProj {
			lambda0 := calcPerpProj(ends1.Top, ends2.Top, p.q, p.r)
			if lambda0 <= 0 {
				sp.Position = r3.Add(ends1.Top, r3.Scale(lambda0, p.q))
				sp.Resolved = true
			}
			continue
		}

		p.s = r3.Sub(r3.Add(ends1.Top, ends1.Bottom), r3.Scale(2, cfg.Vertex))
		p.t = r3.Sub(r3.Add(ends2.Top, ends2.Bottom), r3.Scale(2, cfg.Vertex))
		p.qs = r3.Cross(p.q, p.s)
		p.rt = r3.Cross(p.r, p.t)
		p.m = -r3.Dot(p.s, p.rt) / r3.Dot(p.q, p.rt)

		if cfg.StripLengthTolerance != 0 {
			p.limit = 1 + cfg.StripLengthTolerance
		}

		ok := false
		if math.Abs(p.m) <= p.limit {
			p.n = -r3.Dot(p.t, p.qs) / r3.Dot(p.r, p.qs)
			ok = math.Abs(p.n) <= p.limit
		}
		if !ok {
			ok = recoverSpacePoint(&p, cfg)
		}
		if ok {
			sp.Position = r3.Scale(0.5, r3.Add(r3.Add(ends1.Top, ends1.Bottom), r3.Scale(p.m, p.q)))
			sp.Resolved = true
		}
	}
}
