package rastermask

import (
	"image"
	"image/color"
)

// GridFromImage builds a classified grid from a raster mask image: pixels
// with luminance above threshold become inside cells. The grid gains a
// one-cell clear border ring around the image so the border invariants of
// the tracer hold, and the image's y-down rows are flipped into the grid's
// y-up latitude axis. The resulting grid is already classified (mask pixels
// are inside, not boundary marks), so it can be sieved, expanded, and traced
// directly.
func GridFromImage(img image.Image, samplesPerDegree float64, threshold uint8) *Grid {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	g := NewGrid(0, w+1, 0, h+1, samplesPerDegree)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			if c.Y > threshold {
				g.SetVal(x+1, h-y, cellInside)
			}
		}
	}
	g.stage = StageClassified

	return g
}

// Image renders the grid's cell values as a grayscale image in the
// equal-channel encoding (value v paints #0v0v0v), latitude rows flipped
// back to image order. Visited markers from tracing render as distinct
// shades, which makes the per-component labeling visible for debugging.
func (g *Grid) Image() image.Image {
	w, h := g.width(), g.height()
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			v := g.cells[x*h+y]
			if v < 0 {
				v = 0
			}
			if v > 255 {
				v = 255
			}

			shade := uint8(v)
			out.Set(x, h-1-y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}

	return out
}
