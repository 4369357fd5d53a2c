// Command packsweep runs one packing configuration across a range of seeds
// and reports how stable the resulting packings are. Rendering and export
// settings in the configuration are ignored; pass -archive or -csv to keep
// the per-seed results.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"voxelpack/internal/archive"
	"voxelpack/internal/config"
	"voxelpack/internal/distribution"
	"voxelpack/internal/packing"
)

type seedResult struct {
	seed      uint64
	placed    int
	exhausted int
	fraction  float64
}

func main() {
	configPath := flag.String("config", "", "Path to TOML run configuration")
	seeds := flag.Int("seeds", 20, "Number of seeds to run")
	start := flag.Uint64("start", 1, "First seed of the sweep")
	csvPath := flag.String("csv", "", "Write per-seed results to this CSV file")
	archivePath := flag.String("archive", "", "Archive every run in this SQLite database")
	flag.Parse()

	if *configPath == "" || *seeds < 1 {
		fmt.Println("Usage: packsweep -config <run.toml> [-seeds 20] [-start 1] [-csv sweep.csv] [-archive runs.db]")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	dist, err := cfg.Dist()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid distribution: %v\n", err)
		os.Exit(1)
	}

	var arch *archive.Archive
	if *archivePath != "" {
		arch, err = archive.Open(*archivePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open archive: %v\n", err)
			os.Exit(1)
		}
		defer arch.Close()
	}

	fmt.Printf("Sweeping %d seeds of %s packing in a %g cell\n\n",
		*seeds, dist.Kind(), cfg.VoxelSize)
	fmt.Printf("%-12s %8s %10s %10s\n", "Seed", "Placed", "Exhausted", "Fraction")

	results := make([]seedResult, 0, *seeds)
	for i := 0; i < *seeds; i++ {
		seed := *start + uint64(i)
		res, err := runSeed(cfg, dist, seed)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Seed %d failed: %v\n", seed, err)
			os.Exit(1)
		}

		sr := seedResult{
			seed:      seed,
			placed:    len(res.Accepted),
			exhausted: res.Exhausted,
			fraction:  res.PackingFraction(),
		}
		results = append(results, sr)
		fmt.Printf("%-12d %8d %10d %10.4f\n", sr.seed, sr.placed, sr.exhausted, sr.fraction)

		if arch != nil {
			if err := archiveRun(arch, cfg, dist, seed, res); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to archive seed %d: %v\n", seed, err)
				os.Exit(1)
			}
		}
	}

	printSummary(results)

	if *csvPath != "" {
		if err := writeSweepCSV(*csvPath, results); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("\nPer-seed results written to %s\n", *csvPath)
	}
}

// runSeed samples and places one full run for the given seed.
func runSeed(cfg config.Run, dist distribution.Distribution, seed uint64) (*packing.Result, error) {
	src := rand.NewSource(seed)
	radii, err := distribution.Sequence(dist, src)
	if err != nil {
		return nil, err
	}

	engine, err := packing.NewEngine(packing.Params{
		CellSize:      cfg.VoxelSize,
		MaxIterations: cfg.MaxIterations,
		Rand:          rand.New(src),
		Detector:      packing.NewGridDetector(),
	})
	if err != nil {
		return nil, err
	}
	return engine.Place(radii)
}

func archiveRun(arch *archive.Archive, cfg config.Run, dist distribution.Distribution,
	seed uint64, res *packing.Result) error {

	params, err := json.Marshal(dist)
	if err != nil {
		return err
	}
	_, err = arch.SaveRun(archive.Run{
		Distribution:    string(dist.Kind()),
		Params:          string(params),
		CellSize:        res.CellSize,
		MaxIterations:   cfg.MaxIterations,
		Seed:            seed,
		Exhausted:       res.Exhausted,
		PackingFraction: res.PackingFraction(),
	}, res.Accepted)
	return err
}

func printSummary(results []seedResult) {
	fractions := make([]float64, len(results))
	placed := make([]float64, len(results))
	for i, r := range results {
		fractions[i] = r.fraction
		placed[i] = float64(r.placed)
	}

	minF, maxF := fractions[0], fractions[0]
	for _, f := range fractions[1:] {
		if f < minF {
			minF = f
		}
		if f > maxF {
			maxF = f
		}
	}

	fmt.Printf("\nSweep of %d seeds:\n", len(results))
	fmt.Printf("  packing fraction: mean %.4f, stddev %.4f, min %.4f, max %.4f\n",
		stat.Mean(fractions, nil), sweepStdDev(fractions), minF, maxF)
	fmt.Printf("  circles placed:   mean %.1f, stddev %.1f\n",
		stat.Mean(placed, nil), sweepStdDev(placed))
}

// sweepStdDev is stat.StdDev with the single-sample case pinned to zero.
func sweepStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

func writeSweepCSV(path string, results []seedResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"seed", "placed", "exhausted", "packing_fraction"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.FormatUint(r.seed, 10),
			strconv.Itoa(r.placed),
			strconv.Itoa(r.exhausted),
			strconv.FormatFloat(r.fraction, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
