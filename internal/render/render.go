// Package render rasterizes stroke captures to PNG, used to export a
// learner's practice drawings for review.
package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/fogleman/gg"

	"github.com/halftone/sketchpath/internal/strokes"
)

// Options controls the output raster. Zero values fall back to defaults.
type Options struct {
	// Width and Height of the output image in pixels.
	Width  int
	Height int
	// Padding in pixels kept clear around the drawing.
	Padding float64
	// Background fill; defaults to white.
	Background color.Color
	// Ink is the stroke color used when a stroke carries none.
	Ink color.Color
}

const (
	defaultSize    = 512
	defaultPadding = 24
	defaultWidth   = 2.5
)

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = defaultSize
	}
	if o.Height <= 0 {
		o.Height = defaultSize
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.Ink == nil {
		o.Ink = color.Black
	}
	return o
}

// PNG renders the drawing and writes it as PNG. The drawing is scaled
// uniformly to fit inside the padded canvas, preserving aspect ratio.
func PNG(w io.Writer, d strokes.Drawing, opts Options) error {
	opts = opts.withDefaults()

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetColor(opts.Background)
	dc.Clear()

	sx, sy, scale := fitTransform(d, opts)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, s := range d.Strokes {
		if len(s.Points) == 0 {
			continue
		}
		dc.SetColor(strokeColor(s, opts.Ink))
		width := s.Width
		if width <= 0 {
			width = defaultWidth
		}
		dc.SetLineWidth(width * scale)

		if len(s.Points) == 1 {
			p := s.Points[0]
			dc.DrawCircle(sx+p.X*scale, sy+p.Y*scale, width*scale/2)
			dc.Fill()
			continue
		}
		dc.MoveTo(sx+s.Points[0].X*scale, sy+s.Points[0].Y*scale)
		for _, p := range s.Points[1:] {
			dc.LineTo(sx+p.X*scale, sy+p.Y*scale)
		}
		dc.Stroke()
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// fitTransform computes the offset and uniform scale mapping drawing
// coordinates into the padded canvas, centering the drawing.
func fitTransform(d strokes.Drawing, opts Options) (offsetX, offsetY, scale float64) {
	bounds := d.Bounds()
	availW := float64(opts.Width) - 2*opts.Padding
	availH := float64(opts.Height) - 2*opts.Padding

	scale = 1
	if bounds.Width() > 0 || bounds.Height() > 0 {
		scale = availW / bounds.Width()
		if s := availH / bounds.Height(); bounds.Height() > 0 && (bounds.Width() == 0 || s < scale) {
			scale = s
		}
	}

	offsetX = opts.Padding + (availW-bounds.Width()*scale)/2 - bounds.MinX*scale
	offsetY = opts.Padding + (availH-bounds.Height()*scale)/2 - bounds.MinY*scale
	return offsetX, offsetY, scale
}

// strokeColor resolves a stroke's hex color, falling back to the ink
// default when the stroke carries none or the value does not parse.
func strokeColor(s strokes.Stroke, ink color.Color) color.Color {
	hex := strings.TrimPrefix(strings.TrimSpace(s.Color), "#")
	if len(hex) != 6 {
		return ink
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return ink
	}
	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 255,
	}
}
