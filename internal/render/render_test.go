package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/halftone/sketchpath/internal/strokes"
)

func renderToImage(t *testing.T, d strokes.Drawing, opts Options) image.Image {
	t.Helper()
	var buf bytes.Buffer
	if err := PNG(&buf, d, opts); err != nil {
		t.Fatalf("render: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return img
}

func inkPixels(img image.Image) int {
	n := 0
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r < 0xc000 || g < 0xc000 || bl < 0xc000 {
				n++
			}
		}
	}
	return n
}

func TestPNG_Dimensions(t *testing.T) {
	d := strokes.Drawing{Strokes: []strokes.Stroke{
		{Points: []strokes.Point{{X: 0, Y: 0}, {X: 10, Y: 10}}},
	}}
	img := renderToImage(t, d, Options{Width: 200, Height: 100})
	if got := img.Bounds().Dx(); got != 200 {
		t.Errorf("width = %d, want 200", got)
	}
	if got := img.Bounds().Dy(); got != 100 {
		t.Errorf("height = %d, want 100", got)
	}
}

func TestPNG_DrawsStrokes(t *testing.T) {
	d := strokes.Drawing{Strokes: []strokes.Stroke{
		{Points: []strokes.Point{{X: 0, Y: 50}, {X: 100, Y: 50}}, Width: 4},
	}}
	img := renderToImage(t, d, Options{Width: 128, Height: 128})
	if n := inkPixels(img); n == 0 {
		t.Error("no ink pixels; stroke was not drawn")
	}
}

func TestPNG_EmptyDrawingIsBlank(t *testing.T) {
	img := renderToImage(t, strokes.Drawing{}, Options{Width: 64, Height: 64})
	if n := inkPixels(img); n != 0 {
		t.Errorf("%d ink pixels on an empty drawing, want 0", n)
	}
}

func TestPNG_SinglePointDrawsDot(t *testing.T) {
	d := strokes.Drawing{Strokes: []strokes.Stroke{
		{Points: []strokes.Point{{X: 5, Y: 5}}, Width: 6},
	}}
	img := renderToImage(t, d, Options{Width: 64, Height: 64})
	if n := inkPixels(img); n == 0 {
		t.Error("no ink pixels; point was not drawn")
	}
}

func TestPNG_StrokeColor(t *testing.T) {
	d := strokes.Drawing{Strokes: []strokes.Stroke{
		{Points: []strokes.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, Color: "#ff0000", Width: 8},
	}}
	img := renderToImage(t, d, Options{Width: 64, Height: 64})

	// Somewhere on the canvas there is a saturated red pixel.
	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r > 0xe000 && g < 0x4000 && bl < 0x4000 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no red pixel; stroke color ignored")
	}
}

func TestStrokeColor_FallsBackToInk(t *testing.T) {
	cases := []string{"", "#12", "not-a-color", "#zzzzzz"}
	for _, c := range cases {
		got := strokeColor(strokes.Stroke{Color: c}, color.Black)
		if got != color.Black {
			t.Errorf("strokeColor(%q) = %v, want ink fallback", c, got)
		}
	}
}
