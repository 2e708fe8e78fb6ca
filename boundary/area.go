package boundary

// Area returns the signed area of the polygon in grid-cell units, summed over
// all segments via the shoelace formula. Counter-clockwise rings contribute
// positive area. Coordinates are shifted relative to each segment's first
// vertex before multiplying, which keeps the intermediate products small for
// polygons far from the grid origin.
func (p *Polygon) Area() float64 {
	var total int64
	for _, seg := range p.Segments {
		if len(seg) == 0 {
			continue
		}

		x0, y0 := seg[0].X, seg[0].Y
		var sum int64
		for i := range seg {
			a := seg[i]
			b := seg[(i+1)%len(seg)]

			ax, ay := int64(a.X-x0), int64(a.Y-y0)
			bx, by := int64(b.X-x0), int64(b.Y-y0)
			sum += ax*by - bx*ay
		}

		total += sum
	}

	return float64(total) / 2
}
