// Package config loads and validates TOML run configurations for the
// voxelpack tools.
package config

import (
	"fmt"
	"math"

	"github.com/BurntSushi/toml"

	"voxelpack/internal/distribution"
	"voxelpack/internal/packing"
	"voxelpack/pkg/colorutil"
)

// Output selects which artifacts a run writes. Empty paths are skipped.
type Output struct {
	PNG       string  `toml:"png"`        // raster rendering
	TIFF      string  `toml:"tiff"`       // raster rendering, TIFF container
	SVG       string  `toml:"svg"`        // vector rendering
	CSV       string  `toml:"csv"`        // visible circles as x,y,r rows
	JSON      string  `toml:"json"`       // full run document
	Archive   string  `toml:"archive"`    // SQLite run archive
	ImageSize int     `toml:"image_size"` // raster width and height in pixels
	Fill      bool    `toml:"fill"`       // fill circles instead of outlines
	Margin    float64 `toml:"margin"`     // rendered margin as a fraction of the cell

	// Colors are "#rrggbb" values; empty keeps the renderer default and
	// "none" hides the element.
	CircleColor     string `toml:"circle_color"`
	BoundaryColor   string `toml:"boundary_color"`
	BackgroundColor string `toml:"background_color"`
}

// Run is a complete packing run configuration.
type Run struct {
	VoxelSize     float64 `toml:"voxel_size"`     // cell side length
	MaxIterations int     `toml:"max_iterations"` // retry budget per radius
	Seed          uint64  `toml:"seed"`           // 0 means seed from the clock
	Distribution  string  `toml:"distribution"`   // uniform, normal or gamma

	Uniform distribution.Uniform `toml:"uniform"`
	Normal  distribution.Normal  `toml:"normal"`
	Gamma   distribution.Gamma   `toml:"gamma"`

	Output Output `toml:"output"`
}

// Load reads a TOML run configuration from path, applies defaults and
// validates the result.
func Load(path string) (Run, error) {
	var run Run
	if _, err := toml.DecodeFile(path, &run); err != nil {
		return Run{}, fmt.Errorf("could not load config %s: %w", path, err)
	}
	run.ApplyDefaults()
	if err := run.Validate(); err != nil {
		return Run{}, fmt.Errorf("config %s: %w", path, err)
	}
	return run, nil
}

// ApplyDefaults fills unset fields with their documented defaults.
func (r *Run) ApplyDefaults() {
	if r.VoxelSize == 0 {
		r.VoxelSize = 1.0
	}
	if r.MaxIterations == 0 {
		r.MaxIterations = packing.DefaultMaxIterations
	}
}

// Validate checks ranges and the distribution selection. It returns a
// descriptive error for the first violation found.
func (r *Run) Validate() error {
	if math.IsNaN(r.VoxelSize) || math.IsInf(r.VoxelSize, 0) || r.VoxelSize <= 0 {
		return fmt.Errorf("voxel_size must be positive and finite, got %g", r.VoxelSize)
	}
	if r.MaxIterations <= 0 {
		return fmt.Errorf("max_iterations must be positive, got %d", r.MaxIterations)
	}
	if _, err := r.Dist(); err != nil {
		return err
	}
	if r.Output.ImageSize < 0 {
		return fmt.Errorf("output.image_size must not be negative, got %d", r.Output.ImageSize)
	}
	if math.IsNaN(r.Output.Margin) || r.Output.Margin < 0 {
		return fmt.Errorf("output.margin must not be negative, got %g", r.Output.Margin)
	}
	for _, c := range []struct{ key, value string }{
		{"output.circle_color", r.Output.CircleColor},
		{"output.boundary_color", r.Output.BoundaryColor},
		{"output.background_color", r.Output.BackgroundColor},
	} {
		if c.value == "" || c.value == "none" {
			continue
		}
		if _, err := colorutil.ParseHex(c.value); err != nil {
			return fmt.Errorf("%s: %w", c.key, err)
		}
	}
	return nil
}

// Dist returns the configured distribution variant, validated. The tables
// of the unselected variants are ignored, so a config may carry all three
// and switch between them by name.
func (r *Run) Dist() (distribution.Distribution, error) {
	kind, err := distribution.ParseKind(r.Distribution)
	if err != nil {
		return nil, err
	}

	var d distribution.Distribution
	switch kind {
	case distribution.KindUniform:
		d = r.Uniform
	case distribution.KindNormal:
		d = r.Normal
	case distribution.KindGamma:
		d = r.Gamma
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}
