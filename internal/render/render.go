// Package render draws packed circle sets as raster images and SVG
// documents.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"

	"voxelpack/pkg/colorutil"
	"voxelpack/pkg/geometry"
)

// DefaultImageSize is the raster width and height used when Options does not
// set one.
const DefaultImageSize = 1024

// Options configures how a circle set is rendered.
type Options struct {
	ImageSize int     // output width and height in pixels
	Margin    float64 // extra border around the cell, as a fraction of the cell size
	Fill      bool    // fill circles instead of stroking outlines
	LineWidth float64 // stroke width in pixels

	Background color.RGBA // canvas color
	Circle     color.RGBA // circle stroke or fill color; zero alpha hides them
	Boundary   color.RGBA // cell edge color; zero alpha hides the edges
}

// DefaultOptions returns the standard rendering options: black outlines and
// red cell edges on a white canvas, with a tenth of the cell as margin.
func DefaultOptions() Options {
	return Options{
		ImageSize:  DefaultImageSize,
		Margin:     0.1,
		LineWidth:  1.5,
		Background: colorutil.White,
		Circle:     colorutil.Black,
		Boundary:   colorutil.Red,
	}
}

// normalized clamps numeric options to usable values.
func (o Options) normalized() Options {
	if o.ImageSize <= 0 {
		o.ImageSize = DefaultImageSize
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.LineWidth <= 0 {
		o.LineWidth = 1.5
	}
	return o
}

// Image renders the circle set into a square RGBA image. World coordinates
// have y growing upward; they are mapped so the cell fills the image apart
// from the configured margin, with the world origin at the lower left.
func Image(circles []geometry.Circle, cellSize float64, opts Options) *image.RGBA {
	opts = opts.normalized()
	size := opts.ImageSize

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	margin := opts.Margin * cellSize
	span := cellSize + 2*margin
	scale := float64(size) / span

	// Shift the visible world region to the origin first, then scale and
	// flip the y axis into image coordinates.
	world := geometry.Scale(scale, -scale).
		Compose(geometry.Translation(margin, -(cellSize + margin)))

	z := &vector.Rasterizer{}
	for _, c := range circles {
		p := world.Apply(c.Center)
		r := c.Radius * scale
		if opts.Fill {
			fillCircle(img, z, p.X, p.Y, r, opts.Circle)
		} else {
			strokeCircle(img, z, p.X, p.Y, r, opts.LineWidth, opts.Circle)
		}
	}

	if opts.Boundary.A > 0 {
		lowerLeft := world.Apply(geometry.Point2D{X: 0, Y: 0})
		upperRight := world.Apply(geometry.Point2D{X: cellSize, Y: cellSize})
		strokeRect(img, z, lowerLeft.X, upperRight.Y, upperRight.X, lowerLeft.Y,
			opts.LineWidth, opts.Boundary)
	}
	return img
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return f.Close()
}

// WriteTIFF encodes img to path as a deflate-compressed TIFF.
func WriteTIFF(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	opts := &tiff.Options{Compression: tiff.Deflate}
	if err := tiff.Encode(f, img, opts); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return f.Close()
}

// circleSegments picks enough polygon segments to keep the chord error well
// under a pixel at the given pixel radius.
func circleSegments(r float64) int {
	n := int(r)
	if n < 16 {
		n = 16
	}
	if n > 256 {
		n = 256
	}
	return n
}

// appendCircle adds a polygonal circle path to the rasterizer. Reversed
// paths wind the other way, which turns a nested path into a hole.
func appendCircle(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	pts := geometry.GenerateCirclePoints(cx, cy, r, circleSegments(r))
	if reverse {
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}
	z.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
}

// appendRect adds an axis-aligned rectangle path to the rasterizer.
func appendRect(z *vector.Rasterizer, x0, y0, x1, y1 float64, reverse bool) {
	z.MoveTo(float32(x0), float32(y0))
	if reverse {
		z.LineTo(float32(x0), float32(y1))
		z.LineTo(float32(x1), float32(y1))
		z.LineTo(float32(x1), float32(y0))
	} else {
		z.LineTo(float32(x1), float32(y0))
		z.LineTo(float32(x1), float32(y1))
		z.LineTo(float32(x0), float32(y1))
	}
	z.ClosePath()
}

// fillCircle draws a filled circle.
func fillCircle(dst *image.RGBA, z *vector.Rasterizer, cx, cy, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	appendCircle(z, cx, cy, r, false)
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// strokeCircle draws a circle outline of the given width as an annulus. A
// radius smaller than the stroke collapses into a filled dot.
func strokeCircle(dst *image.RGBA, z *vector.Rasterizer, cx, cy, r, width float64, c color.RGBA) {
	outer := r + width/2
	inner := r - width/2
	if inner <= 0 {
		fillCircle(dst, z, cx, cy, outer, c)
		return
	}
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	appendCircle(z, cx, cy, outer, false)
	appendCircle(z, cx, cy, inner, true)
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// strokeRect draws a rectangle outline of the given width centered on the
// rectangle's edges.
func strokeRect(dst *image.RGBA, z *vector.Rasterizer, x0, y0, x1, y1, width float64, c color.RGBA) {
	half := width / 2
	z.Reset(dst.Bounds().Dx(), dst.Bounds().Dy())
	appendRect(z, x0-half, y0-half, x1+half, y1+half, false)
	appendRect(z, x0+half, y0+half, x1-half, y1-half, true)
	z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}
