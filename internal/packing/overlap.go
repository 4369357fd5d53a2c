package packing

import (
	"voxelpack/pkg/geometry"
)

// An OverlapDetector decides whether a candidate circle's periodic images
// collide with any previously accepted circle. The engine calls Reset once
// per run, then Observe once per acceptance in acceptance order.
//
// Implementations must agree on the predicate itself: an image pair collides
// when the center distance is strictly less than the sum of the radii, so
// exact tangency is allowed.
type OverlapDetector interface {
	// Reset clears all observed circles and prepares the detector for a
	// run in a cell of the given side length.
	Reset(cellSize float64)
	// Observe records an accepted circle's mirror set.
	Observe(m MirrorSet)
	// Overlaps reports whether any image of cand collides with any
	// observed image.
	Overlaps(cand MirrorSet) bool
}

// ScanDetector is the reference OverlapDetector: a plain linear scan of
// every observed image against every candidate image. It has no tuning and
// no failure modes, which makes it the yardstick the accelerated detector
// is checked against.
type ScanDetector struct {
	images []geometry.Circle
}

// NewScanDetector creates an empty ScanDetector.
func NewScanDetector() *ScanDetector {
	return &ScanDetector{}
}

// Reset discards all observed images.
func (d *ScanDetector) Reset(cellSize float64) {
	d.images = d.images[:0]
}

// Observe records all nine images of an accepted circle.
func (d *ScanDetector) Observe(m MirrorSet) {
	d.images = append(d.images, m[:]...)
}

// Overlaps reports whether any observed image overlaps any image of cand.
func (d *ScanDetector) Overlaps(cand MirrorSet) bool {
	for _, img := range d.images {
		for _, c := range cand {
			if img.Overlaps(c) {
				return true
			}
		}
	}
	return false
}
