package packing

import (
	"voxelpack/pkg/geometry"
)

// MirrorSet holds the nine periodic images of one circle: the circle itself
// plus eight copies translated by one cell width along each axis and both
// diagonals. Overlap tests run against whole mirror sets, which is what
// makes the packing wrap consistently across the cell edges.
type MirrorSet [9]geometry.Circle

// Primary returns the untranslated image.
func (m MirrorSet) Primary() geometry.Circle {
	return m[0]
}

// Mirrors returns the periodic images of c in a square cell of side cellSize.
// The primary image comes first; all nine share c's radius.
func Mirrors(c geometry.Circle, cellSize float64) MirrorSet {
	l := cellSize
	return MirrorSet{
		c,
		c.Translate(-l, 0),
		c.Translate(l, 0),
		c.Translate(0, -l),
		c.Translate(0, l),
		c.Translate(-l, -l),
		c.Translate(l, -l),
		c.Translate(-l, l),
		c.Translate(l, l),
	}
}
