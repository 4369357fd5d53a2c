package packing

import (
	"testing"

	"voxelpack/pkg/geometry"
)

func TestMirrors(t *testing.T) {
	const l = 2.5
	c := geometry.NewCircle(0.75, 1.5, 0.3)
	set := Mirrors(c, l)

	if set.Primary() != c {
		t.Fatalf("primary image %v, want %v", set.Primary(), c)
	}

	wantOffsets := map[[2]float64]bool{
		{0, 0}: false, {-l, 0}: false, {l, 0}: false,
		{0, -l}: false, {0, l}: false,
		{-l, -l}: false, {l, -l}: false, {-l, l}: false, {l, l}: false,
	}
	for _, img := range set {
		if img.Radius != c.Radius {
			t.Errorf("image %v changed radius", img)
		}
		off := [2]float64{img.Center.X - c.Center.X, img.Center.Y - c.Center.Y}
		seen, ok := wantOffsets[off]
		if !ok {
			t.Errorf("unexpected image offset %v", off)
			continue
		}
		if seen {
			t.Errorf("duplicate image offset %v", off)
		}
		wantOffsets[off] = true
	}
	for off, seen := range wantOffsets {
		if !seen {
			t.Errorf("missing image offset %v", off)
		}
	}
}

func TestMirrorsStayInMirroredDomain(t *testing.T) {
	// For a center inside the cell, every image center must land in the
	// three-by-three block of cells around the primary one.
	const l = 1.0
	centers := []geometry.Point2D{
		{X: 0, Y: 0},
		{X: 0.999, Y: 0.001},
		{X: 0.5, Y: 0.5},
		{X: 0.25, Y: 0.75},
	}

	for _, center := range centers {
		set := Mirrors(geometry.Circle{Center: center, Radius: 0.1}, l)
		for _, img := range set {
			if img.Center.X < -l || img.Center.X > 2*l || img.Center.Y < -l || img.Center.Y > 2*l {
				t.Errorf("image center %v outside [-L, 2L] block for primary %v", img.Center, center)
			}
		}
	}
}
