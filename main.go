// Command voxelpack generates a random periodic circle packing from a TOML
// run configuration and writes the configured renderings and exports.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"

	"voxelpack/internal/archive"
	"voxelpack/internal/config"
	"voxelpack/internal/distribution"
	"voxelpack/internal/export"
	"voxelpack/internal/packing"
	"voxelpack/internal/render"
	"voxelpack/internal/version"
	"voxelpack/pkg/colorutil"
)

func main() {
	configPath := flag.String("config", "", "Path to TOML run configuration")
	seedFlag := flag.Uint64("seed", 0, "Override the configured random seed")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("voxelpack %s\n", version.String())
		return
	}
	if *configPath == "" {
		fmt.Println("Usage: voxelpack -config <run.toml> [-seed N] [-verbose]")
		os.Exit(1)
	}

	logger := newLogger(*verbose)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("configuration rejected")
	}
	if *seedFlag != 0 {
		cfg.Seed = *seedFlag
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	if err := run(cfg, seed, logger); err != nil {
		logger.Fatal().Err(err).Msg("packing run failed")
	}
}

// newLogger builds the console logger shared by all voxelpack output.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(level).With().Timestamp().Str("app", "voxelpack").Logger()
}

// run samples radii, packs them and writes every configured artifact.
func run(cfg config.Run, seed uint64, logger zerolog.Logger) error {
	dist, err := cfg.Dist()
	if err != nil {
		return err
	}

	// One source drives the whole run: the radius draw first, then the
	// candidate centers. Replaying a seed replays everything.
	src := rand.NewSource(seed)
	radii, err := distribution.Sequence(dist, src)
	if err != nil {
		return err
	}

	logger.Info().
		Str("distribution", string(dist.Kind())).
		Int("radii", len(radii)).
		Float64("voxel_size", cfg.VoxelSize).
		Int("max_iterations", cfg.MaxIterations).
		Uint64("seed", seed).
		Msg("starting placement")

	engine, err := packing.NewEngine(packing.Params{
		CellSize:      cfg.VoxelSize,
		MaxIterations: cfg.MaxIterations,
		Rand:          rand.New(src),
		Detector:      packing.NewGridDetector(),
		Logger:        &logger,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	result, err := engine.Place(radii)
	if err != nil {
		return err
	}

	summary := result.Summarize()
	logger.Info().
		Int("placed", len(result.Accepted)).
		Int("exhausted", result.Exhausted).
		Int("visible", len(result.Visible)).
		Float64("packing_fraction", result.PackingFraction()).
		Float64("mean_radius", summary.Mean).
		Float64("max_radius", summary.Max).
		Dur("elapsed", time.Since(start)).
		Msg("placement finished")

	return writeOutputs(cfg, seed, dist, result, logger)
}

// writeOutputs writes every artifact with a non-empty path in the config.
func writeOutputs(cfg config.Run, seed uint64, dist distribution.Distribution,
	result *packing.Result, logger zerolog.Logger) error {

	opts := render.DefaultOptions()
	if cfg.Output.ImageSize > 0 {
		opts.ImageSize = cfg.Output.ImageSize
	}
	if cfg.Output.Margin > 0 {
		opts.Margin = cfg.Output.Margin
	}
	opts.Fill = cfg.Output.Fill
	opts.Circle = parseColor(cfg.Output.CircleColor, opts.Circle)
	opts.Boundary = parseColor(cfg.Output.BoundaryColor, opts.Boundary)
	opts.Background = parseColor(cfg.Output.BackgroundColor, opts.Background)

	if cfg.Output.PNG != "" || cfg.Output.TIFF != "" {
		img := render.Image(result.Visible, result.CellSize, opts)
		if path := cfg.Output.PNG; path != "" {
			if err := render.WritePNG(path, img); err != nil {
				return err
			}
			logger.Info().Str("path", path).Msg("wrote PNG rendering")
		}
		if path := cfg.Output.TIFF; path != "" {
			if err := render.WriteTIFF(path, img); err != nil {
				return err
			}
			logger.Info().Str("path", path).Msg("wrote TIFF rendering")
		}
	}

	if path := cfg.Output.SVG; path != "" {
		if err := render.WriteSVGFile(path, result.Visible, result.CellSize, opts); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("wrote SVG rendering")
	}

	if path := cfg.Output.CSV; path != "" {
		if err := export.WriteCSVFile(path, result.Visible); err != nil {
			return err
		}
		logger.Info().Str("path", path).Int("rows", len(result.Visible)).Msg("wrote CSV export")
	}

	if path := cfg.Output.JSON; path != "" {
		doc := export.NewDocument(result, string(dist.Kind()), seed, cfg.MaxIterations)
		if err := doc.Save(path); err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("wrote run document")
	}

	if path := cfg.Output.Archive; path != "" {
		id, err := archiveRun(path, cfg, seed, dist, result)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Int64("run_id", id).Msg("archived run")
	}

	return nil
}

// parseColor maps a config color value to a concrete color. Empty keeps
// the fallback, "none" yields a fully transparent color that the renderer
// skips. Invalid values were already rejected by config validation.
func parseColor(s string, fallback color.RGBA) color.RGBA {
	switch s {
	case "":
		return fallback
	case "none":
		return color.RGBA{}
	}
	c, err := colorutil.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

// archiveRun appends the run to the SQLite archive at path.
func archiveRun(path string, cfg config.Run, seed uint64,
	dist distribution.Distribution, result *packing.Result) (int64, error) {

	params, err := json.Marshal(dist)
	if err != nil {
		return 0, err
	}

	a, err := archive.Open(path)
	if err != nil {
		return 0, err
	}
	defer a.Close()

	return a.SaveRun(archive.Run{
		Distribution:    string(dist.Kind()),
		Params:          string(params),
		CellSize:        result.CellSize,
		MaxIterations:   cfg.MaxIterations,
		Seed:            seed,
		Exhausted:       result.Exhausted,
		PackingFraction: result.PackingFraction(),
	}, result.Accepted)
}
