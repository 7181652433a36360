package spacepoint

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/strip.report/internal/geom"
	"github.com/banshee-data/strip.report/internal/strip"
)

func pairOf(front, back *strip.Hit) SpacePoint {
	return SpacePoint{Front: Cluster{Primary: front}, Back: Cluster{Primary: back}}
}

func TestCalculateSpacePointsVertexMode(t *testing.T) {
	// Front strip at x=1.05 spanning y in [-50, 50] at z=10; back strip
	// at y=0.55 spanning x at z=11. A ray from the origin through both
	// strips crosses the front surface at y = (10/11)*0.55 = 0.5.
	front := frontSolverModule()
	back := backSolverModule()

	points := []SpacePoint{pairOf(hitAt(front, 1.05, 0.5), hitAt(back, 0.3, 0.55))}
	CalculateSpacePoints(points, nil)

	if !points[0].Resolved {
		t.Fatal("space point not resolved")
	}
	want := r3.Vec{X: 1.05, Y: 0.5, Z: 10}
	if d := r3.Norm(r3.Sub(points[0].Position, want)); d > 1e-6 {
		t.Errorf("Position = %v, want %v (off by %v)", points[0].Position, want, d)
	}
}

func TestCalculateSpacePointsThroughAddHits(t *testing.T) {
	front := frontSolverModule()
	back := backSolverModule()

	points := AddHits(nil, []*strip.Hit{hitAt(front, 1.05, 0.5)}, []*strip.Hit{hitAt(back, 0.3, 0.55)}, nil)
	CalculateSpacePoints(points, nil)

	if len(points) != 1 || !points[0].Resolved {
		t.Fatalf("pipeline did not produce a resolved point: %+v", points)
	}
	want := r3.Vec{X: 1.05, Y: 0.5, Z: 10}
	if d := r3.Norm(r3.Sub(points[0].Position, want)); d > 1e-6 {
		t.Errorf("Position = %v, want %v", points[0].Position, want)
	}
}

func TestCalculateSpacePointsSkipsResolved(t *testing.T) {
	front := frontSolverModule()
	back := backSolverModule()

	points := []SpacePoint{pairOf(hitAt(front, 1.05, 0.5), hitAt(back, 0.3, 0.55))}
	points[0].Position = r3.Vec{X: -7, Y: -7, Z: -7}
	points[0].Resolved = true

	CalculateSpacePoints(points, nil)
	if points[0].Position != (r3.Vec{X: -7, Y: -7, Z: -7}) {
		t.Errorf("resolved entry was recomputed: %v", points[0].Position)
	}
}

func TestCalculateSpacePointsIdempotent(t *testing.T) {
	front := frontSolverModule()
	back := backSolverModule()

	points := []SpacePoint{pairOf(hitAt(front, 1.05, 0.5), hitAt(back, 0.3, 0.55))}
	CalculateSpacePoints(points, nil)
	first := points[0].Position

	CalculateSpacePoints(points, nil)
	if !points[0].Resolved || points[0].Position != first {
		t.Errorf("second pass changed the point: %v -> %v", first, points[0].Position)
	}
}

// overshootModules builds a pair whose only physical crossing region
// lies slightly beyond the ends of both strips: the solved parameters m
// and n both come out a little above 1.
func overshootModules() (*strip.PlanarModule, *strip.PlanarModule) {
	front := newModule("front",
		strip.UniformBinning(-50, -40, 100),
		strip.UniformBinning(-50, 50, 1),
		geom.Translate(0, 0, 10))
	back := newModule("back",
		strip.UniformBinning(-50, 50, 1),
		strip.UniformBinning(50, 60, 100),
		geom.Translate(0, 0, 11))
	return front, back
}

func TestCalculateSpacePointsOutsideToleranceUnrecoverable(t *testing.T) {
	front, back := overshootModules()
	// m resolves to about 1.019, beyond limit 1.01.
	points := []SpacePoint{pairOf(hitAt(front, -46.05, 49), hitAt(back, 49, 56.05))}

	cfg := DefaultConfig()
	cfg.StripLengthGapTolerance = 0 // recovery disabled
	CalculateSpacePoints(points, cfg)
	if points[0].Resolved {
		t.Errorf("expected unresolved point with recovery disabled, got %v", points[0].Position)
	}

	// Perpendicular strips cannot trade overshoot between the surfaces
	// (the projection scale q.r/|q|^2 vanishes), so even a generous gap
	// tolerance cannot recover this pair.
	points[0] = pairOf(hitAt(front, -46.05, 49), hitAt(back, 49, 56.05))
	cfg.StripLengthGapTolerance = 5
	CalculateSpacePoints(points, cfg)
	if points[0].Resolved {
		t.Errorf("expected unresolved point for perpendicular strips, got %v", points[0].Position)
	}
}

func TestRecoverSpacePointSameSignPositive(t *testing.T) {
	// Parallel equal-length strips: the projection scale is exactly 1,
	// so the worse overshoot (0.02 on m) is subtracted from both.
	p := spacePointParameters{
		q:     r3.Vec{Y: 100},
		r:     r3.Vec{Y: 100},
		m:     1.02,
		n:     1.01,
		limit: 1.005,
	}
	cfg := DefaultConfig()
	cfg.StripLengthGapTolerance = 10

	if !recoverSpacePoint(&p, cfg) {
		t.Fatal("recovery failed, want success")
	}
	if math.Abs(p.m-1.0) > 1e-12 || math.Abs(p.n-0.99) > 1e-12 {
		t.Errorf("corrected (m, n) = (%v, %v), want (1, 0.99)", p.m, p.n)
	}
	if math.Abs(p.m) >= p.limit || math.Abs(p.n) >= p.limit {
		t.Errorf("corrected parameters must satisfy the base limit")
	}
}

func TestRecoverSpacePointSameSignNegative(t *testing.T) {
	p := spacePointParameters{
		q:     r3.Vec{Y: 100},
		r:     r3.Vec{Y: 100},
		m:     -1.02,
		n:     -1.01,
		limit: 1.005,
	}
	cfg := DefaultConfig()
	cfg.StripLengthGapTolerance = 10

	if !recoverSpacePoint(&p, cfg) {
		t.Fatal("recovery failed, want success")
	}
	if math.Abs(p.m+1.0) > 1e-12 || math.Abs(p.n+0.99) > 1e-12 {
		t.Errorf("corrected (m, n) = (%v, %v), want (-1, -0.99)", p.m, p.n)
	}
}

func TestRecoverSpacePointGapToleranceDisabled(t *testing.T) {
	p := spacePointParameters{q: r3.Vec{Y: 100}, r: r3.Vec{Y: 100}, m: 1.001, n: 1.001, limit: 1.005}

	cfg := DefaultConfig()
	cfg.StripLengthGapTolerance = 0
	if recoverSpacePoint(&p, cfg) {
		t.Error("recovery must fail with zero gap tolerance")
	}
	cfg.StripLengthGapTolerance = -1
	if recoverSpacePoint(&p, cfg) {
		t.Error("recovery must fail with negative gap tolerance")
	}
}

func TestRecoverSpacePointMixedSign(t *testing.T) {
	p := spacePointParameters{q: r3.Vec{Y: 100}, r: r3.Vec{Y: 100}, m: 1.02, n: -1.02, limit: 1.005}
	cfg := DefaultConfig()
	cfg.StripLengthGapTolerance = 10
	if recoverSpacePoint(&p, cfg) {
		t.Error("mixed-sign overshoot must not recover")
	}
}

func TestRecoverSpacePointSingleSided(t *testing.T) {
	p := spacePointParameters{q: r3.Vec{Y: 100}, r: r3.Vec{Y: 100}, m: 1.02, n: 0.5, limit: 1.005}
	cfg := DefaultConfig()
	cfg.StripLengthGapTolerance = 10
	if recoverSpacePoint(&p, cfg) {
		t.Error("single-sided overshoot must not recover")
	}
}

func TestRecoverSpacePointBeyondExtendedLimit(t *testing.T) {
	p := spacePointParameters{q: r3.Vec{Y: 100}, r: r3.Vec{Y: 100}, m: 2, n: 1.001, limit: 1.005}
	cfg := DefaultConfig()
	cfg.StripLengthGapTolerance = 1 // extends the limit by only 0.01
	if recoverSpacePoint(&p, cfg) {
		t.Error("overshoot beyond the extended limit must not recover")
	}
}

func TestCalcPerpProj(t *testing.T) {
	a := r3.Vec{}
	q := r3.Vec{Y: 1}
	c := r3.Vec{X: 0.3, Y: 0.4, Z: 1}
	r := r3.Vec{X: 1}

	got := calcPerpProj(a, c, q, r)
	if math.Abs(got-(-0.4)) > 1e-12 {
		t.Errorf("lambda0 = %v, want -0.4", got)
	}
}

func TestCalcPerpProjNearParallel(t *testing.T) {
	q := r3.Vec{Y: 1}
	if got := calcPerpProj(r3.Vec{}, r3.Vec{Z: 1}, q, q); got != 1 {
		t.Errorf("lambda0 = %v, want sentinel 1 for parallel strips", got)
	}
}

// perpProjModules puts a short back strip above the top end of the
// front strip so the projection parameter comes out negative and the
// candidate is accepted.
func perpProjModules() (*strip.PlanarModule, *strip.PlanarModule) {
	front := newModule("front",
		strip.UniformBinning(-10, 10, 200),
		strip.UniformBinning(-5, 5, 1),
		geom.Translate(0, 0, 10))
	back := newModule("back",
		strip.UniformBinning(-0.5, 0.5, 1),
		strip.UniformBinning(5, 10, 50),
		geom.Translate(0, 0, 11))
	return front, back
}

func TestCalculateSpacePointsPerpProjAccepts(t *testing.T) {
	front, back := perpProjModules()
	points := []SpacePoint{pairOf(hitAt(front, 1.05, 3), hitAt(back, 0.2, 5.55))}

	cfg := DefaultConfig()
	cfg.UsePerpProj = true
	CalculateSpacePoints(points, cfg)

	if !points[0].Resolved {
		t.Fatal("perpendicular projection did not resolve the point")
	}
	// lambda0 = -(0.55*10)*1 / 100 = -0.055; a + lambda0*q = (1.05, 4.45, 10).
	want := r3.Vec{X: 1.05, Y: 4.45, Z: 10}
	if d := r3.Norm(r3.Sub(points[0].Position, want)); d > 1e-6 {
		t.Errorf("Position = %v, want %v", points[0].Position, want)
	}
}

func TestCalculateSpacePointsPerpProjRejects(t *testing.T) {
	// The back strip sits below the front strip's top end: lambda0 > 0,
	// and the mode neither accepts nor falls back to the vertex solve.
	front := frontSolverModule()
	back := backSolverModule()
	points := []SpacePoint{pairOf(hitAt(front, 1.05, 0.5), hitAt(back, 0.3, 0.55))}

	cfg := DefaultConfig()
	cfg.UsePerpProj = true
	CalculateSpacePoints(points, cfg)

	if points[0].Resolved {
		t.Errorf("perp-proj mode must reject this geometry, got %v", points[0].Position)
	}
}

func TestCalculateSpacePointsStripLengthTolerance(t *testing.T) {
	// The crossing sits just past the end of both strips; with zero
	// tolerances the solve fails outright.
	front, back := overshootModules()
	points := []SpacePoint{pairOf(hitAt(front, -46.05, 49), hitAt(back, 49, 56.05))}

	cfg := DefaultConfig()
	cfg.StripLengthTolerance = 0
	cfg.StripLengthGapTolerance = 0
	CalculateSpacePoints(points, cfg)
	if points[0].Resolved {
		t.Error("expected unresolved point with zero tolerances")
	}

	// A tolerance comfortably above the ~1.9% overshoot accepts it on
	// the primary path.
	points[0] = pairOf(hitAt(front, -46.05, 49), hitAt(back, 49, 56.05))
	cfg.StripLengthTolerance = 0.05
	CalculateSpacePoints(points, cfg)
	if !points[0].Resolved {
		t.Error("expected resolved point with widened strip-length tolerance")
	}
}
