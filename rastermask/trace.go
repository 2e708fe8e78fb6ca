package rastermask

import (
	"fmt"

	"github.com/geospect/boundex/boundary"
)

// Moore neighborhood in counter-clockwise order for an x-east, y-north grid:
// E, NE, N, NW, W, SW, S, SE. Counter-clockwise scanning makes traced outer
// rings wind counter-clockwise, so their shoelace area is positive.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

func mooreIndex(dx, dy int) int {
	for i := 0; i < 8; i++ {
		if mooreDX[i] == dx && mooreDY[i] == dy {
			return i
		}
	}

	panic(fmt.Sprintf("rastermask: (%d,%d) is not a Moore neighbor offset", dx, dy))
}

// TracePolygons scans the whole grid interior and produces one closed polygon
// per connected inside component, in discovery order (outer loop over the
// longitude axis, inner loop over the latitude axis, skipping the first and
// last latitude rows, which are grid border). Each traced component is
// flood-marked with a fresh visited value >= 2 so it is consumed exactly
// once. Vertices are absolute grid indices.
func (g *Grid) TracePolygons() ([]*boundary.Polygon, error) {
	g.requireStage(StageClassified)

	w, h := g.width(), g.height()
	polys := make([]*boundary.Polygon, 0, 4)
	nextMark := firstVisitedMark

	for x := 0; x < w; x++ {
		for y := 1; y < h-1; y++ {
			if g.cells[x*h+y] != cellInside {
				continue
			}

			ring, err := g.traceBoundary(x, y)
			if err != nil {
				return nil, err
			}

			g.markComponent(x, y, nextMark)
			nextMark++

			polys = append(polys, &boundary.Polygon{Segments: [][]boundary.Vertex{ring}})
		}
	}

	g.stage = StageTraced

	return polys, nil
}

// inComponent reports whether local cell (x,y) is an untraced inside cell.
// Out-of-range lookups are ordinary here (the walk probes past the region),
// not bounds violations.
func (g *Grid) inComponent(x, y int) bool {
	w, h := g.width(), g.height()
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}

	return g.cells[x*h+y] == cellInside
}

// traceBoundary walks the outer contour of the component containing local
// cell (px0,py0) by Moore-neighbor tracing with backtracking. The scan order
// guarantees the start cell is a bottom-left corner of its component: no
// inside neighbor to its west or south. A vertex is emitted only when the
// walk changes direction; straight (collinear) runs are compressed away.
func (g *Grid) traceBoundary(px0, py0 int) ([]boundary.Vertex, error) {
	if g.inComponent(px0-1, py0) || g.inComponent(px0, py0-1) {
		return nil, fmt.Errorf("trace start (%d,%d) has an inside neighbor to its west or south: %w",
			px0+g.lonMin, py0+g.latMin, ErrInconsistentMask)
	}

	pts := make([]boundary.Vertex, 0, 64)
	push := func(x, y int) {
		if n := len(pts); n >= 2 {
			a, b := pts[n-2], pts[n-1]
			if (b.X-a.X)*(y-b.Y)-(b.Y-a.Y)*(x-b.X) == 0 {
				pts = pts[:n-1]
			}
		}
		if n := len(pts); n > 0 && pts[n-1].X == x && pts[n-1].Y == y {
			return
		}
		pts = append(pts, boundary.Vertex{X: x, Y: y})
	}

	push(px0, py0)

	// The backtrack cell starts at the (guaranteed outside) west neighbor.
	cx, cy := px0, py0
	bx, by := px0-1, py0

	// Stop when the walk stands on the start cell about to repeat its first
	// move; comparing only positions would stop early on components whose
	// contour passes through the start cell more than once.
	var firstX, firstY int
	first := true

	maxSteps := 4*g.width()*g.height() + 8
	for steps := 0; ; steps++ {
		if steps > maxSteps {
			return nil, fmt.Errorf("contour at (%d,%d) did not close after %d steps: %w",
				px0+g.lonMin, py0+g.latMin, maxSteps, ErrInconsistentMask)
		}

		nx, ny, nbx, nby, found := g.nextBoundaryCell(cx, cy, bx, by)
		if !found {
			// Isolated single cell.
			break
		}

		if first {
			firstX, firstY = nx, ny
			first = false
		} else if cx == px0 && cy == py0 && nx == firstX && ny == firstY {
			break
		}

		cx, cy, bx, by = nx, ny, nbx, nby
		push(cx, cy)
	}

	// The walk re-emits the start cell on closing; drop the duplicate, then
	// clean up collinearity across the wraparound.
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	pts = trimWrapCollinear(pts)

	// Translate local offsets back to absolute grid indices.
	for i := range pts {
		pts[i].X += g.lonMin
		pts[i].Y += g.latMin
	}

	return pts, nil
}

// nextBoundaryCell scans the Moore neighborhood of (cx,cy) counter-clockwise
// starting just past the backtrack cell (bx,by) and returns the first
// untraced inside cell, along with the new backtrack (the last outside cell
// checked before the hit).
func (g *Grid) nextBoundaryCell(cx, cy, bx, by int) (nx, ny, nbx, nby int, found bool) {
	start := (mooreIndex(bx-cx, by-cy) + 1) % 8

	lbx, lby := bx, by
	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		tx, ty := cx+mooreDX[i], cy+mooreDY[i]

		if g.inComponent(tx, ty) {
			return tx, ty, lbx, lby, true
		}
		lbx, lby = tx, ty
	}

	return 0, 0, bx, by, false
}

// trimWrapCollinear removes vertices that are collinear with their neighbors
// across the ring's implicit closing edge.
func trimWrapCollinear(pts []boundary.Vertex) []boundary.Vertex {
	for len(pts) >= 3 {
		a, b, c := pts[len(pts)-2], pts[len(pts)-1], pts[0]
		if (b.X-a.X)*(c.Y-b.Y)-(b.Y-a.Y)*(c.X-b.X) != 0 {
			break
		}
		pts = pts[:len(pts)-1]
	}
	for len(pts) >= 3 {
		a, b, c := pts[len(pts)-1], pts[0], pts[1]
		if (b.X-a.X)*(c.Y-b.Y)-(b.Y-a.Y)*(c.X-b.X) != 0 {
			break
		}
		pts = pts[1:]
	}

	return pts
}

// markComponent flood-marks every untraced inside cell 8-connected to the
// local start cell with the given visited value, using the same explicit
// worklist/group pattern as the classifier. 8-connectivity matches the Moore
// tracer's notion of a single component, so diagonal-touching regions are
// consumed by exactly one trace.
func (g *Grid) markComponent(px0, py0 int, mark int32) {
	w, h := g.width(), g.height()

	seed := px0*h + py0
	g.cells[seed] = mark
	group := make([]int, 0, 256)
	group = append(group, seed)

	for n := 0; n < len(group); n++ {
		c := group[n]
		x, y := c/h, c%h

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}

				tx, ty := x+dx, y+dy
				if tx < 0 || ty < 0 || tx >= w || ty >= h {
					continue
				}

				t := tx*h + ty
				if g.cells[t] == cellInside {
					g.cells[t] = mark
					group = append(group, t)
				}
			}
		}
	}
}
