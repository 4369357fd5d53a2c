package packing

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"voxelpack/pkg/geometry"
)

// DefaultMaxIterations is the per-radius retry budget used when Params does
// not set one.
const DefaultMaxIterations = 100

// Rand supplies the uniform variates used to draw candidate centers.
// *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	// Float64 returns a pseudo-random number in [0, 1).
	Float64() float64
}

// Params configures a packing engine.
type Params struct {
	// CellSize is the side length of the square periodic cell.
	CellSize float64
	// MaxIterations caps the placement attempts per radius. Zero selects
	// DefaultMaxIterations.
	MaxIterations int
	// Rand draws candidate centers, two variates per attempt (x then y).
	// Required.
	Rand Rand
	// Detector tests candidates against accepted circles. Nil selects a
	// fresh ScanDetector.
	Detector OverlapDetector
	// Logger receives per-radius debug events. Nil disables them.
	Logger *zerolog.Logger
}

// Validate checks the parameters and returns a descriptive error for the
// first violation found.
func (p Params) Validate() error {
	if math.IsNaN(p.CellSize) || math.IsInf(p.CellSize, 0) || p.CellSize <= 0 {
		return fmt.Errorf("cell size must be positive and finite, got %g", p.CellSize)
	}
	if p.MaxIterations < 0 {
		return fmt.Errorf("max iterations must not be negative, got %d", p.MaxIterations)
	}
	if p.Rand == nil {
		return fmt.Errorf("a random source is required")
	}
	return nil
}

// Engine places radius sequences into a periodic cell.
type Engine struct {
	params Params
	log    zerolog.Logger
}

// NewEngine validates the parameters, fills in defaults and returns a ready
// engine.
func NewEngine(params Params) (*Engine, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine params: %w", err)
	}
	if params.MaxIterations == 0 {
		params.MaxIterations = DefaultMaxIterations
	}
	if params.Detector == nil {
		params.Detector = NewScanDetector()
	}

	log := zerolog.Nop()
	if params.Logger != nil {
		log = *params.Logger
	}
	return &Engine{params: params, log: log}, nil
}

// Place packs the given radii into the cell, in the order given. Callers
// that want the canonical densest packing pass the radii sorted descending,
// as produced by distribution.Sequence.
//
// Every radius must be positive and finite; the whole slice is validated
// before the first placement attempt. A radius that runs out of attempts
// does not abort the run: it is recorded as exhausted and skipped.
func (e *Engine) Place(radii []float64) (*Result, error) {
	if err := validateRadii(radii); err != nil {
		return nil, err
	}

	det := e.params.Detector
	det.Reset(e.params.CellSize)
	store := NewStore(e.params.CellSize, len(radii))

	placements := make([]Placement, 0, len(radii))
	exhausted := 0
	for i, r := range radii {
		pl := e.placeOne(r, store, det)
		placements = append(placements, pl)
		if pl.Outcome == OutcomeExhausted {
			exhausted++
			e.log.Debug().
				Int("index", i).
				Float64("radius", r).
				Int("attempts", pl.Attempts).
				Msg("radius exhausted")
		}
	}

	return &Result{
		CellSize:   e.params.CellSize,
		Accepted:   store.Circles(),
		Visible:    Clip(store, e.params.CellSize),
		Placements: placements,
		Exhausted:  exhausted,
	}, nil
}

// placeOne runs the rejection sampling loop for a single radius.
func (e *Engine) placeOne(radius float64, store *Store, det OverlapDetector) Placement {
	l := e.params.CellSize
	for attempt := 1; attempt <= e.params.MaxIterations; attempt++ {
		center := geometry.Point2D{
			X: e.params.Rand.Float64() * l,
			Y: e.params.Rand.Float64() * l,
		}
		cand := Mirrors(geometry.Circle{Center: center, Radius: radius}, l)

		if store.Len() > 0 && det.Overlaps(cand) {
			continue
		}

		store.Add(cand)
		det.Observe(cand)
		return Placement{
			Radius:   radius,
			Outcome:  OutcomePlaced,
			Circle:   cand.Primary(),
			Attempts: attempt,
		}
	}
	return Placement{
		Radius:   radius,
		Outcome:  OutcomeExhausted,
		Attempts: e.params.MaxIterations,
	}
}

func validateRadii(radii []float64) error {
	for i, r := range radii {
		if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
			return fmt.Errorf("radius %d must be positive and finite, got %g", i, r)
		}
	}
	return nil
}
