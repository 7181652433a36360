// Package spacepoint reconstructs 3D space points from pairs of
// one-dimensional strip measurements on two back-to-back sensor
// surfaces.
//
// The pipeline is: raw hits per surface → cluster aggregation
// (ClusterHits) → angular front/back matching (AddHits) → strip segment
// resolution and the skew-line intersection solve
// (CalculateSpacePoints), including a bounded recovery for candidates
// resolved slightly off the ends of their strips.
//
// Everything here is synchronous and free of shared mutable state; a
// Config may be shared across goroutines working on disjoint hit
// batches. Failures never abort a batch: an input that cannot be
// matched or solved simply produces no space point.
package spacepoint
