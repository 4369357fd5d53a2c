package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"voxelpack/internal/distribution"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "run.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
voxel_size = 2.5
max_iterations = 250
seed = 42
distribution = "gamma"

[gamma]
shape = 2.0
scale = 0.02
size = 400

[output]
png = "packing.png"
csv = "circles.csv"
image_size = 2048
fill = true
margin = 0.05
circle_color = "#336699"
boundary_color = "none"
`)

	run, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if run.VoxelSize != 2.5 {
		t.Errorf("VoxelSize = %g, want 2.5", run.VoxelSize)
	}
	if run.MaxIterations != 250 {
		t.Errorf("MaxIterations = %d, want 250", run.MaxIterations)
	}
	if run.Seed != 42 {
		t.Errorf("Seed = %d, want 42", run.Seed)
	}
	if run.Output.PNG != "packing.png" || run.Output.CSV != "circles.csv" {
		t.Errorf("unexpected output config: %+v", run.Output)
	}
	if !run.Output.Fill || run.Output.ImageSize != 2048 {
		t.Errorf("unexpected output config: %+v", run.Output)
	}
	if run.Output.CircleColor != "#336699" || run.Output.BoundaryColor != "none" {
		t.Errorf("unexpected color config: %+v", run.Output)
	}

	d, err := run.Dist()
	if err != nil {
		t.Fatalf("Dist failed: %v", err)
	}
	g, ok := d.(distribution.Gamma)
	if !ok {
		t.Fatalf("Dist returned %T, want distribution.Gamma", d)
	}
	if g.Shape != 2.0 || g.Scale != 0.02 || g.Size != 400 {
		t.Errorf("gamma params %+v", g)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
distribution = "uniform"

[uniform]
low = 0.01
high = 0.05
size = 100
`)

	run, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if run.VoxelSize != 1.0 {
		t.Errorf("default VoxelSize = %g, want 1.0", run.VoxelSize)
	}
	if run.MaxIterations != 100 {
		t.Errorf("default MaxIterations = %d, want 100", run.MaxIterations)
	}
	if run.Seed != 0 {
		t.Errorf("default Seed = %d, want 0", run.Seed)
	}
}

func TestLoadUnknownDistribution(t *testing.T) {
	path := writeConfig(t, `
voxel_size = 1.0
distribution = "zipf"
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted an unknown distribution")
	}
	if !errors.Is(err, distribution.ErrUnknownKind) {
		t.Errorf("error %v does not wrap ErrUnknownKind", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name: "negative voxel size",
			content: `
voxel_size = -1.0
distribution = "uniform"
[uniform]
low = 0.01
high = 0.05
size = 10
`,
			wantMsg: "voxel_size",
		},
		{
			name: "negative max iterations",
			content: `
max_iterations = -2
distribution = "uniform"
[uniform]
low = 0.01
high = 0.05
size = 10
`,
			wantMsg: "max_iterations",
		},
		{
			name: "missing distribution params",
			content: `
distribution = "normal"
`,
			wantMsg: "normal",
		},
		{
			name: "inverted uniform bounds",
			content: `
distribution = "uniform"
[uniform]
low = 0.5
high = 0.1
size = 10
`,
			wantMsg: "uniform",
		},
		{
			name: "negative margin",
			content: `
distribution = "uniform"
[uniform]
low = 0.01
high = 0.05
size = 10
[output]
margin = -0.5
`,
			wantMsg: "margin",
		},
		{
			name: "bad boundary color",
			content: `
distribution = "uniform"
[uniform]
low = 0.01
high = 0.05
size = 10
[output]
boundary_color = "#zzzzzz"
`,
			wantMsg: "boundary_color",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("Load accepted an invalid config")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("Load of a missing file succeeded")
	}
}

func TestDistSwitchesByName(t *testing.T) {
	run := Run{
		VoxelSize:     1,
		MaxIterations: 100,
		Distribution:  "normal",
		Uniform:       distribution.Uniform{Low: 0.01, High: 0.05, Size: 10},
		Normal:        distribution.Normal{Loc: 0.05, Scale: 0.01, Size: 20},
		Gamma:         distribution.Gamma{Shape: 2, Scale: 0.02, Size: 30},
	}

	d, err := run.Dist()
	if err != nil {
		t.Fatalf("Dist failed: %v", err)
	}
	if d.Kind() != distribution.KindNormal {
		t.Errorf("Dist picked %s, want normal", d.Kind())
	}

	run.Distribution = "gamma"
	d, err = run.Dist()
	if err != nil {
		t.Fatalf("Dist failed: %v", err)
	}
	if d.Kind() != distribution.KindGamma {
		t.Errorf("Dist picked %s, want gamma", d.Kind())
	}
}
