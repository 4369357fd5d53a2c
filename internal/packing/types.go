// Package packing generates random periodic circle packings. Radii are
// placed one at a time, largest first, by rejection sampling: candidate
// centers are drawn uniformly inside a square cell and accepted when none of
// the candidate's nine periodic images overlaps an already accepted circle.
package packing

import (
	"voxelpack/pkg/geometry"
)

// Outcome describes what happened to a single radius during placement.
type Outcome int

const (
	// OutcomePlaced means a non-overlapping position was found.
	OutcomePlaced Outcome = iota
	// OutcomeExhausted means the retry budget ran out and the radius was
	// dropped without being placed.
	OutcomeExhausted
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Placement records the outcome for one radius of the input sequence.
type Placement struct {
	Radius   float64         `json:"radius"`
	Outcome  Outcome         `json:"outcome"`
	Circle   geometry.Circle `json:"circle"` // zero value when exhausted
	Attempts int             `json:"attempts"`
}

// Result is the outcome of one packing run.
type Result struct {
	CellSize   float64           `json:"cell_size"`
	Accepted   []geometry.Circle `json:"accepted"`   // primary circles, acceptance order
	Visible    []geometry.Circle `json:"visible"`    // images visible in the primary cell
	Placements []Placement       `json:"placements"` // one entry per input radius, input order
	Exhausted  int               `json:"exhausted"`  // radii dropped after running out of attempts
}

// PackingFraction returns the fraction of the cell area covered by accepted
// circles. Under periodic boundaries every accepted circle contributes its
// full area to exactly one cell, so the sum runs over primaries only.
func (r *Result) PackingFraction() float64 {
	var area float64
	for _, c := range r.Accepted {
		area += c.Area()
	}
	return area / (r.CellSize * r.CellSize)
}
