// boundaryrender draws the polygons of a boundary KML to a PNG for visual
// inspection of extraction results.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/fogleman/gg"

	"github.com/geospect/boundex/boundary"
)

func main() {
	start := time.Now()
	log.Println("boundaryrender start")
	defer func() {
		log.Printf("boundaryrender end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var kml, out string
	var resolution float64
	var scale float64
	var lineWidth float64

	flag.StringVar(&kml, "kml", "", "Path to a boundary KML written by boundaryextract or maskoutline")
	flag.StringVar(&out, "out", "", "Path for the output PNG")
	flag.Float64Var(&resolution, "resolution", 1.0/3600, "Degrees per grid cell used when the KML was written")
	flag.Float64Var(&scale, "scale", 1, "Output pixels per grid cell")
	flag.Float64Var(&lineWidth, "linewidth", 1, "Stroke width in output pixels")
	flag.Parse()

	if kml == "" || out == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(kml, out, resolution, scale, lineWidth); err != nil {
		log.Fatalln(err)
	}
}

func run(kmlPath, outPath string, resolution, scale, lineWidth float64) error {
	f, err := os.Open(kmlPath)
	if err != nil {
		return err
	}
	defer f.Close()

	polys, err := boundary.ReadKML(f, resolution)
	if err != nil {
		return err
	}
	log.Printf("Read %d polygons from %s\n", len(polys), kmlPath)

	minX, minY, maxX, maxY, ok := extent(polys)
	if !ok {
		log.Println("Nothing to draw")
		return nil
	}

	const pad = 8
	w := int(float64(maxX-minX)*scale) + 2*pad
	h := int(float64(maxY-minY)*scale) + 2*pad

	dc := gg.NewContext(w, h)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	for _, p := range polys {
		for _, seg := range p.Segments {
			if len(seg) < 3 {
				continue
			}

			for i, v := range seg {
				// Image y runs downward; flip the latitude axis.
				px := float64(v.X-minX)*scale + pad
				py := float64(h) - (float64(v.Y-minY)*scale + pad)
				if i == 0 {
					dc.MoveTo(px, py)
				} else {
					dc.LineTo(px, py)
				}
			}
			dc.ClosePath()
		}

		dc.SetRGBA(0.2, 0.4, 1, 0.35)
		dc.FillPreserve()
		dc.SetRGB(0, 0, 0.6)
		dc.SetLineWidth(lineWidth)
		dc.Stroke()
	}

	if err := dc.SavePNG(outPath); err != nil {
		return err
	}
	log.Printf("Wrote %s (%dx%d)\n", outPath, w, h)

	return nil
}

func extent(polys []*boundary.Polygon) (minX, minY, maxX, maxY int, ok bool) {
	for _, p := range polys {
		for _, seg := range p.Segments {
			for _, v := range seg {
				if !ok {
					minX, maxX, minY, maxY = v.X, v.X, v.Y, v.Y
					ok = true
					continue
				}

				if v.X < minX {
					minX = v.X
				}
				if v.X > maxX {
					maxX = v.X
				}
				if v.Y < minY {
					minY = v.Y
				}
				if v.Y > maxY {
					maxY = v.Y
				}
			}
		}
	}

	return minX, minY, maxX, maxY, ok
}
