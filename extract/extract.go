// Package extract orchestrates one boundary-extraction job: input rings are
// rasterized onto a sampling grid, the grid is classified inside/outside,
// optionally sieved and expanded, and the resulting regions are traced and
// simplified into a polygon list.
//
// A job is single-threaded and owns its grid and polygon list exclusively.
// Callers processing many regions in parallel (one worker per city, say)
// must run one job per worker; no state is shared between jobs.
package extract

import (
	"fmt"
	"log"

	"github.com/carbocation/pfx"

	"github.com/geospect/boundex/boundary"
	"github.com/geospect/boundex/rastermask"
)

// Options configures one extraction job.
type Options struct {
	// Name prefixes the extracted polygon names.
	Name string

	// SamplesPerDegree is the grid sampling density: one grid cell spans
	// 1/SamplesPerDegree degrees.
	SamplesPerDegree float64

	// Expansion grows the extracted region outward by this many grid cells
	// before tracing, as safety margin.
	Expansion int

	// MaxDistance is the simplification tolerance in grid units. Zero still
	// removes exactly-collinear vertices.
	MaxDistance float64

	// MinCells drops connected components smaller than this many cells
	// before tracing. Zero keeps everything.
	MinCells int
}

// PolygonStats reports one extracted polygon's simplification outcome.
type PolygonStats struct {
	Name           string
	VerticesBefore int
	VerticesAfter  int
	Deleted        int
	Area           float64
}

// Stats carries the per-job counters. They are reported regardless of
// whether the job completed or aborted.
type Stats struct {
	PointsRasterized  int
	RingsSkipped      int
	ComponentsRemoved int
	Components        int
	ComponentCells    []int
	PolygonsDropped   int
	VerticesDeleted   int
	Polygons          []PolygonStats
}

// Boundary extracts the simplified closed boundaries of the region covered
// by the input rings. Ring coordinates are plane degrees, already
// reprojected; longitudes are normalized here into the 360-degree window
// around the first ring's first vertex before rasterization.
//
// Malformed individual rings (fewer than 3 vertices, zero area) are logged
// and skipped: one bad source polygon must not sink the job. Grid or tracer
// inconsistencies abort the job with an error wrapping
// rastermask.ErrInconsistentMask; the returned Stats are valid either way.
func Boundary(rings [][]boundary.Point, opt Options) ([]*boundary.Polygon, Stats, error) {
	var stats Stats

	if opt.SamplesPerDegree <= 0 {
		return nil, stats, fmt.Errorf("extract: samples per degree must be positive, got %g", opt.SamplesPerDegree)
	}
	if opt.Expansion < 0 {
		return nil, stats, fmt.Errorf("extract: expansion must not be negative, got %d", opt.Expansion)
	}

	kept := make([][]boundary.Point, 0, len(rings))
	for i, ring := range rings {
		if len(ring) < 3 {
			log.Printf("extract: skipping ring %d: only %d vertices", i, len(ring))
			stats.RingsSkipped++
			continue
		}
		if ringArea(ring) == 0 {
			log.Printf("extract: skipping ring %d: zero area", i)
			stats.RingsSkipped++
			continue
		}
		kept = append(kept, ring)
	}
	if len(kept) == 0 {
		return nil, stats, fmt.Errorf("extract: no usable rings: %w", rastermask.ErrDegenerateRing)
	}

	// Unwrap longitudes into one window so a ring straddling the
	// antimeridian does not rasterize across the whole grid.
	anchor := kept[0][0].X
	minLon, maxLon := anchor, anchor
	minLat, maxLat := kept[0][0].Y, kept[0][0].Y
	for i, ring := range kept {
		normalized := make([]boundary.Point, len(ring))
		for j, p := range ring {
			p.X = normalizeLongitude(p.X, anchor)
			normalized[j] = p

			if p.X < minLon {
				minLon = p.X
			}
			if p.X > maxLon {
				maxLon = p.X
			}
			if p.Y < minLat {
				minLat = p.Y
			}
			if p.Y > maxLat {
				maxLat = p.Y
			}
		}
		kept[i] = normalized
	}

	margin := opt.Expansion + 4
	g := rastermask.NewGridForExtent(minLon, maxLon, minLat, maxLat, opt.SamplesPerDegree, margin)

	for _, ring := range kept {
		n, err := g.MarkRing(ring)
		if err != nil {
			// Length was validated above; anything here is unexpected.
			return nil, stats, pfx.Err(err)
		}
		stats.PointsRasterized += n
	}

	g.ClassifyInterior()

	if opt.Expansion > 0 {
		g.Expand(opt.Expansion)
	}

	if opt.MinCells > 0 {
		stats.ComponentsRemoved = g.SieveComponents(opt.MinCells)
		if stats.ComponentsRemoved > 0 {
			log.Printf("extract: sieved %d components below %d cells", stats.ComponentsRemoved, opt.MinCells)
		}
	}

	stats.ComponentCells = g.ComponentSizes()

	polys, err := g.TracePolygons()
	if err != nil {
		return nil, stats, pfx.Err(err)
	}
	stats.Components = len(polys)

	name := opt.Name
	if name == "" {
		name = "region"
	}

	out := make([]*boundary.Polygon, 0, len(polys))
	for i, p := range polys {
		p.Name = fmt.Sprintf("%s_%d", name, i)

		area := p.Area()
		if area == 0 {
			log.Printf("extract: dropping %s: zero area", p.Name)
			stats.PolygonsDropped++
			continue
		}
		if area < 0 {
			// Exported outer boundaries wind counter-clockwise.
			p.Reverse()
		}

		before := p.VertexCount()
		deleted := p.Simplify(opt.MaxDistance)
		stats.VerticesDeleted += deleted
		stats.Polygons = append(stats.Polygons, PolygonStats{
			Name:           p.Name,
			VerticesBefore: before,
			VerticesAfter:  p.VertexCount(),
			Deleted:        deleted,
			Area:           p.Area(),
		})

		out = append(out, p)
	}

	return out, stats, nil
}

func normalizeLongitude(x, anchor float64) float64 {
	for x < anchor-180 {
		x += 360
	}
	for x >= anchor+180 {
		x -= 360
	}

	return x
}

// ringArea is the plane-coordinate shoelace area, used only to reject
// zero-area input rings before rasterization.
func ringArea(ring []boundary.Point) float64 {
	var sum float64
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		sum += (a.X-ring[0].X)*(b.Y-ring[0].Y) - (b.X-ring[0].X)*(a.Y-ring[0].Y)
	}

	return sum / 2
}
