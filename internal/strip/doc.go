// Package strip models the geometry side of strip-sensor measurements:
// ordered bin boundaries along the two local axes of a sensor, the
// segmentation capability interface, planar modules with rigid poses,
// and the Hit type the builder consumes.
//
// Responsibilities: bin lookup for a hit and local-to-global transforms.
// No reconstruction logic is allowed in this package; that lives in
// internal/spacepoint.
package strip
