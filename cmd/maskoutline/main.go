// maskoutline extracts simplified vector boundaries from a raster coverage
// mask image (bright pixels = covered) and writes them as a boundary KML.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	"github.com/disintegration/imaging"

	"github.com/geospect/boundex/boundary"
	"github.com/geospect/boundex/rastermask"
)

func main() {
	start := time.Now()
	log.Println("maskoutline start")
	defer func() {
		log.Printf("maskoutline end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var mask, out string
	var resolution, tolerance float64
	var threshold, expand, minCells, width int

	flag.StringVar(&mask, "mask", "", "Path to mask image (PNG, GIF, BMP, or JPEG)")
	flag.StringVar(&out, "out", "", "Path for the output boundary KML")
	flag.Float64Var(&resolution, "resolution", 3600, "Cells per degree represented by one mask pixel")
	flag.Float64Var(&tolerance, "tolerance", 0, "Simplification tolerance in grid units")
	flag.IntVar(&threshold, "threshold", 127, "Luminance above which a pixel counts as covered")
	flag.IntVar(&expand, "expand", 0, "Expansion radius in grid cells")
	flag.IntVar(&minCells, "mincells", 0, "(Optional) Drop components smaller than this many cells")
	flag.IntVar(&width, "width", 0, "(Optional) Resize the mask to this pixel width before tracing")
	flag.Parse()

	if mask == "" || out == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(mask, out, resolution, tolerance, threshold, expand, minCells, width); err != nil {
		log.Fatalln(err)
	}
}

func run(maskPath, outPath string, resolution, tolerance float64, threshold, expand, minCells, width int) error {
	img, err := openImage(maskPath)
	if err != nil {
		return err
	}

	if width > 0 {
		// Nearest neighbor keeps the mask binary; interpolation would smear
		// the coverage edge across shades.
		img = imaging.Resize(img, width, 0, imaging.NearestNeighbor)
	}

	g := rastermask.GridFromImage(img, resolution, uint8(threshold))

	if minCells > 0 {
		if removed := g.SieveComponents(minCells); removed > 0 {
			log.Printf("Sieved %d components below %d cells\n", removed, minCells)
		}
	}
	if expand > 0 {
		g.Expand(expand)
	}

	polys, err := g.TracePolygons()
	if err != nil {
		return err
	}
	log.Printf("Traced %d components\n", len(polys))

	deleted := 0
	for i, p := range polys {
		p.Name = fmt.Sprintf("mask_%d", i)
		deleted += p.Simplify(tolerance)
	}
	log.Printf("Simplification deleted %d vertices\n", deleted)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	return boundary.WriteKML(f, "maskoutline", polys, 1/resolution)
}

func openImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Must be PNG, GIF, BMP, or JPEG formatted (based on the decoders we
	// have imported).
	img, _, err := image.Decode(f)

	return img, err
}
