// Package distribution samples circle radii from the supported probability
// laws and orders them for placement.
//
// The supported laws form a closed set: uniform, normal and gamma. Each
// variant validates its own parameters eagerly, so a misconfigured
// distribution is rejected before any sampling or placement work happens.
package distribution

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Kind names a supported radius distribution.
type Kind string

const (
	KindUniform Kind = "uniform"
	KindNormal  Kind = "normal"
	KindGamma   Kind = "gamma"
)

// ErrUnknownKind is returned when a configuration names a distribution this
// package does not implement.
var ErrUnknownKind = errors.New("unknown distribution")

// ParseKind maps a configuration string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindUniform, KindNormal, KindGamma:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w %q (supported: uniform, normal, gamma)", ErrUnknownKind, s)
}

// A Distribution produces radius samples. The implementations are the closed
// set of Uniform, Normal and Gamma; the unexported sample method keeps the
// set closed.
type Distribution interface {
	// Kind returns the name of the law.
	Kind() Kind
	// Validate checks the parameters and returns a descriptive error for
	// the first violation found.
	Validate() error

	sample(src rand.Source) []float64
}

// Sequence validates d, draws every radius from it and returns the radii
// sorted in descending order. Placing the largest radii first, while the
// cell is at its emptiest, gives every radius the best chance of finding
// room.
func Sequence(d Distribution, src rand.Source) ([]float64, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	radii := d.sample(src)
	sort.Sort(sort.Reverse(sort.Float64Slice(radii)))
	return radii, nil
}

// Uniform draws radii uniformly from the half-open interval [Low, High).
type Uniform struct {
	Low  float64 `toml:"low" json:"low"`   // inclusive lower bound
	High float64 `toml:"high" json:"high"` // exclusive upper bound
	Size int     `toml:"size" json:"size"` // number of radii to draw
}

// Kind returns KindUniform.
func (u Uniform) Kind() Kind { return KindUniform }

// Validate checks that the interval is positive and non-empty.
func (u Uniform) Validate() error {
	if u.Size <= 0 {
		return fmt.Errorf("uniform: size must be positive, got %d", u.Size)
	}
	if math.IsNaN(u.Low) || math.IsNaN(u.High) || math.IsInf(u.Low, 0) || math.IsInf(u.High, 0) {
		return fmt.Errorf("uniform: bounds must be finite, got [%g, %g)", u.Low, u.High)
	}
	if u.Low <= 0 {
		return fmt.Errorf("uniform: low must be positive, got %g", u.Low)
	}
	if u.High <= u.Low {
		return fmt.Errorf("uniform: high (%g) must be greater than low (%g)", u.High, u.Low)
	}
	return nil
}

func (u Uniform) sample(src rand.Source) []float64 {
	d := distuv.Uniform{Min: u.Low, Max: u.High, Src: src}
	out := make([]float64, u.Size)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Normal draws radii from a Gaussian with mean Loc and standard deviation
// Scale. A Gaussian has unbounded support, so parameter choices that make
// non-positive draws likely will fail radius validation in the packing
// engine rather than here.
type Normal struct {
	Loc   float64 `toml:"loc" json:"loc"`     // mean radius
	Scale float64 `toml:"scale" json:"scale"` // standard deviation
	Size  int     `toml:"size" json:"size"`   // number of radii to draw
}

// Kind returns KindNormal.
func (n Normal) Kind() Kind { return KindNormal }

// Validate checks that the location and spread describe a positive radius law.
func (n Normal) Validate() error {
	if n.Size <= 0 {
		return fmt.Errorf("normal: size must be positive, got %d", n.Size)
	}
	if math.IsNaN(n.Loc) || math.IsInf(n.Loc, 0) || n.Loc <= 0 {
		return fmt.Errorf("normal: loc must be positive and finite, got %g", n.Loc)
	}
	if math.IsNaN(n.Scale) || math.IsInf(n.Scale, 0) || n.Scale <= 0 {
		return fmt.Errorf("normal: scale must be positive and finite, got %g", n.Scale)
	}
	return nil
}

func (n Normal) sample(src rand.Source) []float64 {
	d := distuv.Normal{Mu: n.Loc, Sigma: n.Scale, Src: src}
	out := make([]float64, n.Size)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}

// Gamma draws radii from a gamma law parameterized in the shape/scale
// ("k, theta") convention. distuv.Gamma uses a rate parameter, derived here
// as 1/Scale.
type Gamma struct {
	Shape float64 `toml:"shape" json:"shape"` // shape parameter k
	Scale float64 `toml:"scale" json:"scale"` // scale parameter theta
	Size  int     `toml:"size" json:"size"`   // number of radii to draw
}

// Kind returns KindGamma.
func (g Gamma) Kind() Kind { return KindGamma }

// Validate checks that the shape and scale are positive.
func (g Gamma) Validate() error {
	if g.Size <= 0 {
		return fmt.Errorf("gamma: size must be positive, got %d", g.Size)
	}
	if math.IsNaN(g.Shape) || math.IsInf(g.Shape, 0) || g.Shape <= 0 {
		return fmt.Errorf("gamma: shape must be positive and finite, got %g", g.Shape)
	}
	if math.IsNaN(g.Scale) || math.IsInf(g.Scale, 0) || g.Scale <= 0 {
		return fmt.Errorf("gamma: scale must be positive and finite, got %g", g.Scale)
	}
	return nil
}

func (g Gamma) sample(src rand.Source) []float64 {
	d := distuv.Gamma{Alpha: g.Shape, Beta: 1 / g.Scale, Src: src}
	out := make([]float64, g.Size)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}
