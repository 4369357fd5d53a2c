package packing

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// RadiusSummary aggregates the accepted radii of a run.
type RadiusSummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// Summarize computes summary statistics over the accepted radii. An empty
// result yields the zero summary.
func (r *Result) Summarize() RadiusSummary {
	if len(r.Accepted) == 0 {
		return RadiusSummary{}
	}

	radii := make([]float64, len(r.Accepted))
	for i, c := range r.Accepted {
		radii[i] = c.Radius
	}
	sort.Float64s(radii)

	s := RadiusSummary{
		Count:  len(radii),
		Mean:   stat.Mean(radii, nil),
		Min:    radii[0],
		Max:    radii[len(radii)-1],
		Median: stat.Quantile(0.5, stat.Empirical, radii, nil),
	}
	if len(radii) > 1 {
		s.StdDev = stat.StdDev(radii, nil)
	}
	return s
}
