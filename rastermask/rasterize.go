package rastermask

import (
	"fmt"

	"github.com/geospect/boundex/boundary"
)

// MarkSegment marks every grid cell the straight segment between (x0,y0) and
// (x1,y1) passes through with the boundary value, and returns the number of
// marks laid down (cells can be marked more than once across segments).
//
// The walk is an incremental DDA: at each step it computes, per axis still
// short of its destination index, the fractional parameter at which the
// segment crosses the next grid line along that axis, and advances along
// whichever axis crosses first. When both axes cross at the same parameter
// (a diagonal crossing through a grid corner) it marks both orthogonally
// adjacent cells in addition to the diagonal destination, so the resulting
// boundary is 8-connected and gap-free: a diagonal-only mark would let the
// flood fill leak between cells touching only at a corner.
//
// Longitude values must be pre-normalized into a single 360-degree window by
// the caller, otherwise a ring crossing the antimeridian rasterizes as a
// spurious segment across the whole grid.
func (g *Grid) MarkSegment(x0, y0, x1, y1 float64) int {
	g.requireStage(StageRaster)

	ix, iy := g.LonIndex(x0), g.LatIndex(y0)
	tx, ty := g.LonIndex(x1), g.LatIndex(y1)

	g.SetVal(ix, iy, cellInside)
	marked := 1

	for ix != tx || iy != ty {
		sx := sign(tx - ix)
		sy := sign(ty - iy)

		// eps values above 1 mean "this axis never crosses again".
		epsX, epsY := 2.0, 2.0
		if sx != 0 {
			// The next grid line along x sits at index ix+1 when walking
			// east, or at ix when walking west.
			nextX := float64(ix+(sx+1)/2) / g.samplesPerDegree
			epsX = (nextX - x0) / (x1 - x0)
		}
		if sy != 0 {
			nextY := float64(iy+(sy+1)/2) / g.samplesPerDegree
			epsY = (nextY - y0) / (y1 - y0)
		}

		switch {
		case epsX < epsY:
			ix += sx
		case epsY < epsX:
			iy += sy
		default:
			// Exact corner crossing: mark both orthogonal neighbors.
			g.SetVal(ix+sx, iy, cellInside)
			g.SetVal(ix, iy+sy, cellInside)
			marked += 2
			ix += sx
			iy += sy
		}

		g.SetVal(ix, iy, cellInside)
		marked++
	}

	return marked
}

// MarkRing rasterizes a closed ring: one MarkSegment per consecutive vertex
// pair, including the wraparound edge from the last vertex back to the first.
// Rings with fewer than 3 vertices are rejected with ErrDegenerateRing.
func (g *Grid) MarkRing(ring []boundary.Point) (int, error) {
	if len(ring) < 3 {
		return 0, fmt.Errorf("ring has %d vertices, need at least 3: %w", len(ring), ErrDegenerateRing)
	}

	total := 0
	for i := range ring {
		a := ring[i]
		b := ring[(i+1)%len(ring)]
		total += g.MarkSegment(a.X, a.Y, b.X, b.Y)
	}

	return total, nil
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}

	return 0
}
