// Command packexport lists archived packing runs and re-exports them as
// images or data files, without re-running the placement.
package main

import (
	"flag"
	"fmt"
	"os"

	"voxelpack/internal/archive"
	"voxelpack/internal/export"
	"voxelpack/internal/packing"
	"voxelpack/internal/render"
)

func main() {
	archivePath := flag.String("archive", "", "Path to the SQLite run archive")
	list := flag.Bool("list", false, "List archived runs and exit")
	runID := flag.Int64("run", 0, "Run ID to export")
	pngPath := flag.String("png", "", "Write a PNG rendering to this path")
	tiffPath := flag.String("tiff", "", "Write a TIFF rendering to this path")
	svgPath := flag.String("svg", "", "Write an SVG rendering to this path")
	csvPath := flag.String("csv", "", "Write visible circles as CSV to this path")
	jsonPath := flag.String("json", "", "Write the run document to this path")
	size := flag.Int("size", 0, "Raster image size in pixels")
	fill := flag.Bool("fill", false, "Fill circles instead of outlines")
	flag.Parse()

	if *archivePath == "" || (!*list && *runID == 0) {
		fmt.Println("Usage: packexport -archive <runs.db> -list")
		fmt.Println("       packexport -archive <runs.db> -run <id> [-png out.png] [-tiff out.tif] [-svg out.svg] [-csv out.csv] [-json out.json]")
		os.Exit(1)
	}

	arch, err := archive.Open(*archivePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open archive: %v\n", err)
		os.Exit(1)
	}
	defer arch.Close()

	if *list {
		listRuns(arch)
		return
	}

	run, circles, err := arch.LoadRun(*runID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load run: %v\n", err)
		os.Exit(1)
	}

	// The archive keeps only the accepted primaries; the visible set is
	// rebuilt by clipping their mirror images, exactly as the original
	// run did.
	visible := packing.Visible(circles, run.CellSize)
	fmt.Printf("Run %d: %s, %d circles accepted, %d visible, fraction %.4f\n",
		run.ID, run.Distribution, len(circles), len(visible), run.PackingFraction)

	opts := render.DefaultOptions()
	if *size > 0 {
		opts.ImageSize = *size
	}
	opts.Fill = *fill

	wrote := false
	if *pngPath != "" || *tiffPath != "" {
		img := render.Image(visible, run.CellSize, opts)
		if *pngPath != "" {
			if err := render.WritePNG(*pngPath, img); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write PNG: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s\n", *pngPath)
			wrote = true
		}
		if *tiffPath != "" {
			if err := render.WriteTIFF(*tiffPath, img); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to write TIFF: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Wrote %s\n", *tiffPath)
			wrote = true
		}
	}
	if *svgPath != "" {
		if err := render.WriteSVGFile(*svgPath, visible, run.CellSize, opts); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write SVG: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *svgPath)
		wrote = true
	}
	if *csvPath != "" {
		if err := export.WriteCSVFile(*csvPath, visible); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write CSV: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *csvPath)
		wrote = true
	}
	if *jsonPath != "" {
		res := &packing.Result{
			CellSize:  run.CellSize,
			Accepted:  circles,
			Visible:   visible,
			Exhausted: run.Exhausted,
		}
		doc := export.NewDocument(res, run.Distribution, run.Seed, run.MaxIterations)
		doc.Created = run.Created
		if err := doc.Save(*jsonPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *jsonPath)
		wrote = true
	}

	if !wrote {
		fmt.Println("Nothing to do: pass at least one of -png, -tiff, -svg, -csv, -json")
	}
}

func listRuns(arch *archive.Archive) {
	runs, err := arch.ListRuns()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list runs: %v\n", err)
		os.Exit(1)
	}
	if len(runs) == 0 {
		fmt.Println("Archive is empty")
		return
	}

	fmt.Printf("%-6s %-20s %-10s %-12s %9s %10s %10s\n",
		"ID", "Created", "Dist", "Seed", "Accepted", "Exhausted", "Fraction")
	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-10s %-12d %9d %10d %10.4f\n",
			r.ID, r.Created.Format("2006-01-02 15:04:05"), r.Distribution,
			r.Seed, r.Accepted, r.Exhausted, r.PackingFraction)
	}
	fmt.Printf("\nTotal: %d runs\n", len(runs))
}
