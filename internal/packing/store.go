package packing

import (
	"voxelpack/pkg/geometry"
)

// Store is the append-only collection of accepted circles. Each acceptance
// appends one mirror set; entries are never mutated or removed, so indices
// into the store stay stable for the lifetime of a run.
type Store struct {
	cellSize float64
	sets     []MirrorSet
}

// NewStore creates an empty store for a cell of side cellSize. The capacity
// hint sizes the backing array for the expected number of acceptances.
func NewStore(cellSize float64, capacity int) *Store {
	if capacity < 0 {
		capacity = 0
	}
	return &Store{
		cellSize: cellSize,
		sets:     make([]MirrorSet, 0, capacity),
	}
}

// Add appends the mirror set of an accepted circle.
func (s *Store) Add(m MirrorSet) {
	s.sets = append(s.sets, m)
}

// Len returns the number of accepted circles.
func (s *Store) Len() int {
	return len(s.sets)
}

// CellSize returns the side length of the periodic cell.
func (s *Store) CellSize() float64 {
	return s.cellSize
}

// Images returns the mirror set of the i-th accepted circle.
func (s *Store) Images(i int) MirrorSet {
	return s.sets[i]
}

// Circle returns the primary image of the i-th accepted circle.
func (s *Store) Circle(i int) geometry.Circle {
	return s.sets[i].Primary()
}

// Circles returns a copy of the primary circles in acceptance order.
func (s *Store) Circles() []geometry.Circle {
	out := make([]geometry.Circle, len(s.sets))
	for i, m := range s.sets {
		out[i] = m.Primary()
	}
	return out
}
