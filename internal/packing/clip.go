package packing

import (
	"voxelpack/pkg/geometry"
)

// Boundaries returns the four edges of the cell square in the order bottom,
// left, top, right.
func Boundaries(cellSize float64) [4]geometry.Segment {
	l := cellSize
	return [4]geometry.Segment{
		{A: geometry.Point2D{X: 0, Y: 0}, B: geometry.Point2D{X: l, Y: 0}},
		{A: geometry.Point2D{X: 0, Y: 0}, B: geometry.Point2D{X: 0, Y: l}},
		{A: geometry.Point2D{X: 0, Y: l}, B: geometry.Point2D{X: l, Y: l}},
		{A: geometry.Point2D{X: l, Y: 0}, B: geometry.Point2D{X: l, Y: l}},
	}
}

// Clip selects, from all stored mirror images, the circles visible in the
// primary cell: every image whose center lies inside the closed cell square,
// plus every image that crosses a cell edge (center strictly closer to the
// edge than the radius). An image can satisfy both tests; the result is
// deduplicated preserving first-inclusion order, so clipping the same store
// twice yields the same slice.
func Clip(store *Store, cellSize float64) []geometry.Circle {
	cell := geometry.NewRect(0, 0, cellSize, cellSize)
	edges := Boundaries(cellSize)

	var visible []geometry.Circle
	seen := make(map[geometry.Circle]struct{})
	add := func(c geometry.Circle) {
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		visible = append(visible, c)
	}

	for i := 0; i < store.Len(); i++ {
		for _, img := range store.Images(i) {
			if cell.Contains(img.Center) {
				add(img)
				continue
			}
			for _, edge := range edges {
				if edge.Distance(img.Center) < img.Radius {
					add(img)
					break
				}
			}
		}
	}
	return visible
}

// Visible rebuilds the mirror sets of previously accepted circles and clips
// them to the primary cell. For the circles of a finished run it reproduces
// the run's visible set, which lets archived runs be re-exported without
// re-packing.
func Visible(accepted []geometry.Circle, cellSize float64) []geometry.Circle {
	store := NewStore(cellSize, len(accepted))
	for _, c := range accepted {
		store.Add(Mirrors(c, cellSize))
	}
	return Clip(store, cellSize)
}
