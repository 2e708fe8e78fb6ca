// Package boundary holds the vector-side representation of an extracted
// coverage region: closed polygon rings on the integer sampling grid, plus the
// geometric operations the extraction pipeline needs (signed area,
// point-in-boundary testing, tolerance-based simplification) and KML-style
// serialization for handing results to external tools.
package boundary

import (
	"errors"
	"math"
)

// ErrMalformedBoundary indicates an internal-consistency failure in a polygon
// (for example an odd crossing parity during a point-in-boundary test). It is
// not recoverable: an earlier pipeline stage produced a corrupt ring.
var ErrMalformedBoundary = errors.New("boundary: malformed polygon")

// Vertex is a point on the integer sampling grid, addressed by
// (lonIndex, latIndex).
type Vertex struct {
	X, Y int
}

// Point is a location in continuous plane coordinates (degrees).
type Point struct {
	X, Y float64
}

// Polygon is a named set of closed rings (segments). Each segment is an
// ordered, non-closed vertex list: the final vertex connects implicitly back
// to the first, and the duplicated closing vertex is never stored.
type Polygon struct {
	Name     string
	Segments [][]Vertex
}

// NewPolygonFromPoints builds a single-segment polygon from plane-coordinate
// points, converting each to grid indices at the given sampling density
// (index = floor(coordinate * samplesPerDegree)).
func NewPolygonFromPoints(name string, pts []Point, samplesPerDegree float64) *Polygon {
	seg := make([]Vertex, 0, len(pts))
	for _, p := range pts {
		seg = append(seg, Vertex{
			X: int(math.Floor(p.X * samplesPerDegree)),
			Y: int(math.Floor(p.Y * samplesPerDegree)),
		})
	}

	return &Polygon{Name: name, Segments: [][]Vertex{seg}}
}

// Duplicate returns an independent deep copy: the copy owns its own vertex
// arrays and can be modified freely.
func (p *Polygon) Duplicate() *Polygon {
	out := &Polygon{Name: p.Name, Segments: make([][]Vertex, 0, len(p.Segments))}
	for _, seg := range p.Segments {
		cp := make([]Vertex, len(seg))
		copy(cp, seg)
		out.Segments = append(out.Segments, cp)
	}

	return out
}

// Translate offsets every vertex of every segment by (dx, dy) grid cells.
func (p *Polygon) Translate(dx, dy int) {
	for _, seg := range p.Segments {
		for i := range seg {
			seg[i].X += dx
			seg[i].Y += dy
		}
	}
}

// Reverse flips the vertex order of every segment in place, which flips the
// winding direction. Used to correct winding before export.
func (p *Polygon) Reverse() {
	for _, seg := range p.Segments {
		for i, j := 0, len(seg)-1; i < j; i, j = i+1, j-1 {
			seg[i], seg[j] = seg[j], seg[i]
		}
	}
}

// VertexCount returns the total number of stored vertices across all segments.
func (p *Polygon) VertexCount() int {
	n := 0
	for _, seg := range p.Segments {
		n += len(seg)
	}

	return n
}
