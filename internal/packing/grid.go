package packing

import (
	"math"

	"voxelpack/pkg/geometry"
)

// gridDivisions is the number of buckets per axis. The grid covers the
// mirrored domain, which spans three cell widths per axis, so each bucket is
// one sixteenth of the cell wide.
const gridDivisions = 48

// GridDetector is an OverlapDetector that sorts observed images into a
// uniform bucket grid over the mirrored domain [-L, 2L] x [-L, 2L]. A
// candidate only measures against images in buckets within reach, where
// reach is the candidate radius plus the largest observed radius. It applies
// the same predicate as ScanDetector and returns identical decisions; it is
// only faster.
//
// Reset must be called before the first Observe or Overlaps.
type GridDetector struct {
	cellSize  float64
	bucket    float64 // side length of one bucket
	maxRadius float64 // largest observed radius
	buckets   [][]geometry.Circle
}

// NewGridDetector creates an empty GridDetector.
func NewGridDetector() *GridDetector {
	return &GridDetector{}
}

// Reset discards all observed images and rebuilds the grid for a cell of
// the given side length.
func (d *GridDetector) Reset(cellSize float64) {
	d.cellSize = cellSize
	d.bucket = 3 * cellSize / gridDivisions
	d.maxRadius = 0
	if d.buckets == nil {
		d.buckets = make([][]geometry.Circle, gridDivisions*gridDivisions)
	}
	for i := range d.buckets {
		d.buckets[i] = d.buckets[i][:0]
	}
}

// bucketIndex maps a coordinate in the mirrored domain to a bucket index,
// clamped so the outermost buckets catch anything out of range.
func (d *GridDetector) bucketIndex(v float64) int {
	i := int(math.Floor((v + d.cellSize) / d.bucket))
	if i < 0 {
		return 0
	}
	if i >= gridDivisions {
		return gridDivisions - 1
	}
	return i
}

// Observe records all nine images of an accepted circle.
func (d *GridDetector) Observe(m MirrorSet) {
	if r := m.Primary().Radius; r > d.maxRadius {
		d.maxRadius = r
	}
	for _, img := range m {
		ix := d.bucketIndex(img.Center.X)
		iy := d.bucketIndex(img.Center.Y)
		idx := iy*gridDivisions + ix
		d.buckets[idx] = append(d.buckets[idx], img)
	}
}

// Overlaps reports whether any observed image overlaps any image of cand.
func (d *GridDetector) Overlaps(cand MirrorSet) bool {
	for _, c := range cand {
		reach := c.Radius + d.maxRadius
		ix0 := d.bucketIndex(c.Center.X - reach)
		ix1 := d.bucketIndex(c.Center.X + reach)
		iy0 := d.bucketIndex(c.Center.Y - reach)
		iy1 := d.bucketIndex(c.Center.Y + reach)

		for iy := iy0; iy <= iy1; iy++ {
			for ix := ix0; ix <= ix1; ix++ {
				for _, img := range d.buckets[iy*gridDivisions+ix] {
					if img.Overlaps(c) {
						return true
					}
				}
			}
		}
	}
	return false
}
