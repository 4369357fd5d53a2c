package packing

import (
	"testing"

	"golang.org/x/exp/rand"

	"voxelpack/pkg/geometry"
)

func detectors() map[string]OverlapDetector {
	return map[string]OverlapDetector{
		"scan": NewScanDetector(),
		"grid": NewGridDetector(),
	}
}

func TestOverlapEmptyDetector(t *testing.T) {
	for name, det := range detectors() {
		t.Run(name, func(t *testing.T) {
			det.Reset(1)
			cand := Mirrors(geometry.NewCircle(0.5, 0.5, 0.4), 1)
			if det.Overlaps(cand) {
				t.Error("empty detector reported an overlap")
			}
		})
	}
}

func TestOverlapAcrossEdge(t *testing.T) {
	// The two circles are far apart in the cell but collide through the
	// periodic seam: the observed circle's +L image sits right next to
	// the candidate.
	for name, det := range detectors() {
		t.Run(name, func(t *testing.T) {
			det.Reset(1)
			det.Observe(Mirrors(geometry.NewCircle(0.05, 0.5, 0.1), 1))

			cand := Mirrors(geometry.NewCircle(0.95, 0.5, 0.1), 1)
			if !det.Overlaps(cand) {
				t.Error("overlap through the vertical seam not detected")
			}
		})
	}
}

func TestOverlapAcrossCorner(t *testing.T) {
	// Collision against a diagonal image: the observed circle at the
	// lower-left corner reaches the candidate at the upper-right corner
	// only through its (+L, +L) image.
	for name, det := range detectors() {
		t.Run(name, func(t *testing.T) {
			det.Reset(1)
			det.Observe(Mirrors(geometry.NewCircle(0.1, 0.1, 0.2), 1))

			cand := Mirrors(geometry.NewCircle(0.9, 0.9, 0.1), 1)
			if !det.Overlaps(cand) {
				t.Error("overlap through the diagonal image not detected")
			}
		})
	}
}

func TestOverlapTangencyAllowed(t *testing.T) {
	// Exact tangency, exact in binary floating point: center distance and
	// radius sum are both exactly 0.5.
	for name, det := range detectors() {
		t.Run(name, func(t *testing.T) {
			det.Reset(1)
			det.Observe(Mirrors(geometry.NewCircle(0.25, 0.5, 0.125), 1))

			cand := Mirrors(geometry.NewCircle(0.75, 0.5, 0.375), 1)
			if det.Overlaps(cand) {
				t.Error("tangent circles reported as overlapping")
			}
		})
	}
}

func TestOverlapSeparateCircles(t *testing.T) {
	for name, det := range detectors() {
		t.Run(name, func(t *testing.T) {
			det.Reset(1)
			det.Observe(Mirrors(geometry.NewCircle(0.25, 0.25, 0.1), 1))

			cand := Mirrors(geometry.NewCircle(0.75, 0.75, 0.1), 1)
			if det.Overlaps(cand) {
				t.Error("well separated circles reported as overlapping")
			}
		})
	}
}

func TestDetectorReset(t *testing.T) {
	for name, det := range detectors() {
		t.Run(name, func(t *testing.T) {
			det.Reset(1)
			det.Observe(Mirrors(geometry.NewCircle(0.5, 0.5, 0.3), 1))
			cand := Mirrors(geometry.NewCircle(0.5, 0.5, 0.3), 1)
			if !det.Overlaps(cand) {
				t.Fatal("overlap not detected before reset")
			}

			det.Reset(1)
			if det.Overlaps(cand) {
				t.Error("detector still reports overlaps after reset")
			}
		})
	}
}

func TestGridDetectorMatchesScan(t *testing.T) {
	// The grid detector must make exactly the same decisions as the
	// reference scan, circle for circle, across a spread of cell sizes
	// and radius scales.
	cases := []struct {
		name       string
		cellSize   float64
		minR       float64
		maxR       float64
		observed   int
		candidates int
	}{
		{"small radii", 1.0, 0.005, 0.02, 80, 300},
		{"large radii", 1.0, 0.1, 0.3, 20, 300},
		{"scaled cell", 25.0, 0.5, 3.0, 40, 300},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(99))
			randomSet := func() MirrorSet {
				c := geometry.Circle{
					Center: geometry.Point2D{
						X: rng.Float64() * tc.cellSize,
						Y: rng.Float64() * tc.cellSize,
					},
					Radius: tc.minR + rng.Float64()*(tc.maxR-tc.minR),
				}
				return Mirrors(c, tc.cellSize)
			}

			scan := NewScanDetector()
			grid := NewGridDetector()
			scan.Reset(tc.cellSize)
			grid.Reset(tc.cellSize)

			for i := 0; i < tc.observed; i++ {
				m := randomSet()
				scan.Observe(m)
				grid.Observe(m)
			}

			for i := 0; i < tc.candidates; i++ {
				cand := randomSet()
				want := scan.Overlaps(cand)
				got := grid.Overlaps(cand)
				if got != want {
					t.Fatalf("candidate %d (%v): grid = %v, scan = %v",
						i, cand.Primary(), got, want)
				}
			}
		})
	}
}
