package spacepoint

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/strip.report/internal/geom"
	"github.com/banshee-data/strip.report/internal/strip"
)

// Cluster groups one or two adjacent fired strip bins on the same
// surface, modelling the assumption that a particle crosses at most two
// neighbouring strips. Secondary is nil for a singleton. A cluster only
// views the caller's hits; its lifetime is bound to the input
// collection.
type Cluster struct {
	Primary   *strip.Hit
	Secondary *strip.Hit
}

// Position returns the representative point of the cluster: the global
// position of its hit, or the componentwise mean when a secondary is
// present.
func (c Cluster) Position() r3.Vec {
	pos := c.Primary.GlobalPosition()
	if c.Secondary != nil {
		pos = geom.Midpoint(pos, c.Secondary.GlobalPosition())
	}
	return pos
}

// sortHits arranges hits into a dense grid sized by the surface's bin
// counts, addressed by (binX, binY). Returns nil if the hits span more
// than one surface. Two hits falling into the same cell keep only the
// last one; duplicate readout of a bin carries no extra position
// information.
func sortHits(hits []*strip.Hit) [][]*strip.Hit {
	surface := hits[0].Surface
	binsX, binsY := surface.Segmentation().Binning()

	grid := make([][]*strip.Hit, binsX.Bins())
	for i := range grid {
		grid[i] = make([]*strip.Hit, binsY.Bins())
	}

	for _, h := range hits {
		if h.Surface != surface {
			return nil
		}
		x, y := strip.BinOf(h)
		grid[x][y] = h
	}

	return grid
}

// ClusterHits aggregates the hits of one surface into clusters of one
// or two adjacent bins.
//
// The grid is scanned along the axis with more bins (the strips'
// elongated direction). Within a scan line, the first fired cell
// becomes a primary; the next cell, fired or not, is taken as its
// secondary and the pair is emitted, after which that secondary becomes
// the current primary. A run of consecutive fired cells therefore
// yields overlapping two-hit clusters sharing their boundary hits: the
// distance-2 merge deliberately over-generates candidates for the
// matcher to disambiguate. A primary still open at the end of a scan
// line is emitted as a singleton.
//
// A single hit always yields one singleton cluster. With perform false,
// every hit is its own singleton. Hits spanning several surfaces abort
// the whole call with an empty result.
func ClusterHits(hits []*strip.Hit, perform bool) []Cluster {
	if len(hits) == 0 {
		return nil
	}
	if len(hits) == 1 {
		return []Cluster{{Primary: hits[0]}}
	}
	if !perform {
		clusters := make([]Cluster, 0, len(hits))
		for _, h := range hits {
			clusters = append(clusters, Cluster{Primary: h})
		}
		return clusters
	}

	grid := sortHits(hits)
	if grid == nil {
		return nil
	}

	nx, ny := len(grid), len(grid[0])
	lines, span := ny, nx
	at := func(line, pos int) *strip.Hit { return grid[pos][line] }
	if nx <= ny {
		lines, span = nx, ny
		at = func(line, pos int) *strip.Hit { return grid[line][pos] }
	}

	var clusters []Cluster
	for line := 0; line < lines; line++ {
		var primary *strip.Hit
		for pos := 0; pos < span; pos++ {
			h := at(line, pos)
			if primary == nil {
				primary = h
				continue
			}
			clusters = append(clusters, Cluster{Primary: primary, Secondary: h})
			primary = h
		}
		if primary != nil {
			clusters = append(clusters, Cluster{Primary: primary})
		}
	}

	return clusters
}
