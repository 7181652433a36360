// Package geom provides the small amount of 3D geometry the strip
// reconstruction needs: polar/azimuthal angles about a reference point
// and rigid 4x4 transforms between sensor-local and global frames.
//
// Transforms are row-major [16]float64, matching the layout used by the
// pose pipeline elsewhere in this organisation's tooling.
package geom
