// boundaryextract converts a CSV of closed polygon rings (already
// reprojected to plane degrees) into a simplified, closed vector boundary
// document, printing per-polygon counters as tab-delimited output.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/geospect/boundex/boundary"
	"github.com/geospect/boundex/extract"
)

func init() {
	flag.Usage = func() {
		flag.PrintDefaults()

		log.Println("Example JSONConfig file layout:")
		bts, err := json.MarshalIndent(extract.JSONConfig{Name: "boston", SamplesPerDegree: 3600}, "", "  ")
		if err == nil {
			log.Println(string(bts))
		}
	}
}

func main() {
	start := time.Now()
	log.Println("boundaryextract start")
	defer func() {
		log.Printf("boundaryextract end. Took %.2f seconds\n", time.Since(start).Seconds())
	}()

	var rings, config, out, name string
	var resolution, tolerance float64
	var expand, minCells int

	flag.StringVar(&rings, "rings", "", "Path to CSV with columns ring,x,y: one row per vertex, grouped by ring ID, vertices in ring order")
	flag.StringVar(&config, "config", "", "(Optional) JSONConfig file; flags override its values when set")
	flag.StringVar(&out, "out", "", "Path for the output boundary KML")
	flag.StringVar(&name, "name", "region", "Name prefix for extracted polygons")
	flag.Float64Var(&resolution, "resolution", 3600, "Grid sampling density in cells per degree")
	flag.Float64Var(&tolerance, "tolerance", 0, "Simplification tolerance in grid units")
	flag.IntVar(&expand, "expand", 0, "Expansion radius in grid cells added around the extracted region")
	flag.IntVar(&minCells, "mincells", 0, "(Optional) Drop connected components smaller than this many cells")
	flag.Parse()

	opt := extract.Options{
		Name:             name,
		SamplesPerDegree: resolution,
		Expansion:        expand,
		MaxDistance:      tolerance,
		MinCells:         minCells,
	}

	if config != "" {
		cfg, err := extract.ParseJSONConfigFromPath(config)
		if err != nil {
			log.Fatalln(err)
		}

		opt = cfg.Options()
		if rings == "" {
			rings = cfg.RingPath
		}
		if out == "" {
			out = cfg.OutputPath
		}
	}

	if rings == "" {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(rings, out, opt); err != nil {
		log.Fatalln(err)
	}
}

func run(ringPath, outPath string, opt extract.Options) error {
	rings, err := readRingCSV(ringPath)
	if err != nil {
		return err
	}
	log.Printf("Read %d rings from %s\n", len(rings), ringPath)

	polys, st, err := extract.Boundary(rings, opt)
	printStats(st)
	if err != nil {
		return err
	}

	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer f.Close()

		if err := boundary.WriteKML(f, opt.Name, polys, 1/opt.SamplesPerDegree); err != nil {
			return err
		}
		log.Printf("Wrote %d polygons to %s\n", len(polys), outPath)
	}

	return nil
}

func printStats(st extract.Stats) {
	fmt.Println(strings.Join([]string{"polygon", "vertices_before", "vertices_after", "deleted", "area_cells"}, "\t"))

	reductions := make([]float64, 0, len(st.Polygons))
	for _, p := range st.Polygons {
		entry := []string{
			p.Name,
			strconv.Itoa(p.VerticesBefore),
			strconv.Itoa(p.VerticesAfter),
			strconv.Itoa(p.Deleted),
			strconv.FormatFloat(p.Area, 'f', 1, 64),
		}
		fmt.Println(strings.Join(entry, "\t"))

		if p.VerticesBefore > 0 {
			reductions = append(reductions, float64(p.Deleted)/float64(p.VerticesBefore))
		}
	}

	log.Printf("Rasterized %d points\n", st.PointsRasterized)
	log.Printf("Found %d components (%d sieved away, %d zero-area dropped), skipped %d input rings\n",
		st.Components, st.ComponentsRemoved, st.PolygonsDropped, st.RingsSkipped)
	log.Printf("Simplification deleted %d vertices\n", st.VerticesDeleted)

	if len(reductions) > 0 {
		mean, err := stats.Mean(reductions)
		if err != nil {
			return
		}
		median, err := stats.Median(reductions)
		if err != nil {
			return
		}
		log.Printf("Vertex reduction mean %.1f%%, median %.1f%%\n", 100*mean, 100*median)
	}
}
