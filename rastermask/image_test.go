package rastermask

import (
	"image"
	"image/color"
	"testing"
)

func TestGridFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(0, 0, color.Gray{Y: 255}) // top-left
	img.SetGray(2, 2, color.Gray{Y: 255}) // bottom-right
	img.SetGray(1, 1, color.Gray{Y: 100}) // below threshold

	g := GridFromImage(img, 1, 127)

	if g.Stage() != StageClassified {
		t.Fatalf("grid in stage %v, expected classified", g.Stage())
	}

	lonMin, lonMax, latMin, latMax := g.Bounds()
	if lonMin != 0 || lonMax != 4 || latMin != 0 || latMax != 4 {
		t.Fatalf("bounds [%d,%d]x[%d,%d], expected a one-cell border around 3x3", lonMin, lonMax, latMin, latMax)
	}

	// Image rows run downward, grid latitude runs upward: the top-left
	// pixel lands at the top of the grid.
	if g.Val(1, 3) != 1 {
		t.Error("top-left pixel not at grid (1,3)")
	}
	if g.Val(3, 1) != 1 {
		t.Error("bottom-right pixel not at grid (3,1)")
	}
	if n := g.CountVal(1); n != 2 {
		t.Errorf("%d inside cells, expected 2 (threshold must exclude the dim pixel)", n)
	}
}

func TestGridImageRendering(t *testing.T) {
	g := NewGrid(0, 4, 0, 4, 1)
	g.SetVal(1, 3, 1)

	img := g.Image()
	b := img.Bounds()
	if b.Dx() != 5 || b.Dy() != 5 {
		t.Fatalf("image is %dx%d, expected 5x5", b.Dx(), b.Dy())
	}

	// Cell value v renders as the equal-channel shade #0v0v0v, rows flipped
	// back to image order: grid (1,3) is image (1,1).
	r, gr, bl, _ := img.At(1, 1).RGBA()
	if r>>8 != 1 || gr>>8 != 1 || bl>>8 != 1 {
		t.Errorf("cell shade: got (%d,%d,%d), expected (1,1,1)", r>>8, gr>>8, bl>>8)
	}
	r, _, _, _ = img.At(0, 0).RGBA()
	if r>>8 != 0 {
		t.Errorf("empty cell shade: got %d, expected 0", r>>8)
	}
}

func TestGridImageRoundTrip(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	img.SetGray(0, 0, color.Gray{Y: 255})
	img.SetGray(2, 2, color.Gray{Y: 255})

	g := GridFromImage(img, 1, 127)

	// Re-importing the rendered grid at threshold 0 picks up the inside
	// cells again, offset by the added border ring.
	g2 := GridFromImage(g.Image(), 1, 0)
	if n := g2.CountVal(1); n != 2 {
		t.Fatalf("%d inside cells after round trip, expected 2", n)
	}
	if g2.Val(2, 4) != 1 || g2.Val(4, 2) != 1 {
		t.Error("round-tripped cells not at the border-shifted positions")
	}
}

func TestTraceFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	g := GridFromImage(img, 1, 127)
	polys, err := g.TracePolygons()
	if err != nil {
		t.Fatal(err)
	}
	if len(polys) != 1 {
		t.Fatalf("traced %d polygons, expected 1", len(polys))
	}
	if a := polys[0].Area(); a != 9 {
		t.Fatalf("area %f, expected 9 for a 4x4 pixel block", a)
	}
}
