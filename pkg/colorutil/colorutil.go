// Package colorutil provides shared color utilities for the voxelpack tools.
package colorutil

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Common colors used by the renderers.
var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Red   = color.RGBA{R: 220, G: 0, B: 0, A: 255}
)

// ParseHex parses a color in "#rrggbb" or "#rgb" form, with or without the
// leading hash. The result is fully opaque.
func ParseHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 3 && len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	if len(hex) == 3 {
		// Expand each nibble: "#f80" means "#ff8800".
		return color.RGBA{
			R: uint8(((v >> 8) & 0xf) * 17),
			G: uint8(((v >> 4) & 0xf) * 17),
			B: uint8((v & 0xf) * 17),
			A: 255,
		}, nil
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8((v >> 8) & 0xff),
		B: uint8(v & 0xff),
		A: 255,
	}, nil
}

// Hex formats a color as a "#rrggbb" triplet, dropping alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
