package render

import (
	"fmt"
	"io"
	"os"

	"voxelpack/pkg/colorutil"
	"voxelpack/pkg/geometry"
)

// svgWriter emits a minimal SVG document. The first write error sticks:
// every later call becomes a no-op and the error is reported once at the
// end.
type svgWriter struct {
	w   io.Writer
	err error
}

func (s *svgWriter) printf(format string, a ...interface{}) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

// WriteSVG writes the circle set as an SVG document in world units, with the
// cell edges marked. The vertical axis is flipped so the drawing matches the
// raster rendering, with the world origin at the lower left.
func WriteSVG(w io.Writer, circles []geometry.Circle, cellSize float64, opts Options) error {
	opts = opts.normalized()
	margin := opts.Margin * cellSize
	span := cellSize + 2*margin

	// Stroke width in world units, chosen so the document matches the
	// raster rendering at its configured pixel size.
	stroke := span / float64(opts.ImageSize) * opts.LineWidth

	svg := &svgWriter{w: w}
	svg.printf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	svg.printf("<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%g %g %g %g\">\n",
		-margin, -margin, span, span)

	if opts.Circle.A > 0 {
		style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", colorutil.Hex(opts.Circle), stroke)
		if opts.Fill {
			style = fmt.Sprintf("fill:%s;stroke:none", colorutil.Hex(opts.Circle))
		}
		svg.printf("  <g style=\"%s\">\n", style)
		for _, c := range circles {
			svg.printf("    <circle cx=\"%g\" cy=\"%g\" r=\"%g\"/>\n",
				c.Center.X, cellSize-c.Center.Y, c.Radius)
		}
		svg.printf("  </g>\n")
	}

	if opts.Boundary.A > 0 {
		svg.printf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" style=\"fill:none;stroke:%s;stroke-width:%g\"/>\n",
			cellSize, cellSize, colorutil.Hex(opts.Boundary), stroke)
	}

	svg.printf("</svg>\n")
	return svg.err
}

// WriteSVGFile writes the SVG document to path.
func WriteSVGFile(path string, circles []geometry.Circle, cellSize float64, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create SVG file: %w", err)
	}
	if err := WriteSVG(f, circles, cellSize, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
