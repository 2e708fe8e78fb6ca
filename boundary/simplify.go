package boundary

// Simplify removes vertices whose perpendicular deviation from a straightened
// chord is at most maxDistance (in grid units), and returns the number of
// vertices deleted across all segments.
//
// This is a single-pass greedy variant, not the classical recursive
// Douglas-Peucker: from a fixed start vertex the chord is extended forward as
// far as every intermediate vertex stays within tolerance; on the first
// violation it backs off one vertex, deletes everything strictly between the
// chord endpoints, and restarts from the new endpoint. Results can differ
// from canonical Douglas-Peucker on some concave shapes (generally this
// simplifies less aggressively). Retained vertices are never moved, and the
// closing edge back to the first vertex is never straightened across.
func (p *Polygon) Simplify(maxDistance float64) int {
	deleted := 0
	for si, seg := range p.Segments {
		out, n := simplifySegment(seg, maxDistance)
		p.Segments[si] = out
		deleted += n
	}

	return deleted
}

func simplifySegment(seg []Vertex, maxDistance float64) ([]Vertex, int) {
	deleted := 0

	i := 0
	for i < len(seg)-2 {
		// Extend the chord while every skipped vertex stays in tolerance.
		j := i + 2
		for j < len(seg) && chordWithinTolerance(seg, i, j, maxDistance) {
			j++
		}
		j-- // back off one vertex

		if j > i+1 {
			deleted += j - i - 1
			seg = append(seg[:i+1], seg[j:]...)
		}
		i++
	}

	return seg, deleted
}

// chordWithinTolerance reports whether every vertex strictly between seg[i]
// and seg[j] lies within maxDistance of the chord seg[i]-seg[j]. The distance
// comparison is the exact cross-product-over-chord-length form, squared to
// avoid the square root: cross^2 <= maxDistance^2 * |chord|^2.
func chordWithinTolerance(seg []Vertex, i, j int, maxDistance float64) bool {
	a, b := seg[i], seg[j]
	dx := int64(b.X - a.X)
	dy := int64(b.Y - a.Y)
	limit := maxDistance * maxDistance * float64(dx*dx+dy*dy)

	for k := i + 1; k < j; k++ {
		cross := float64(dx*int64(seg[k].Y-a.Y) - dy*int64(seg[k].X-a.X))
		if cross*cross > limit {
			return false
		}
	}

	return true
}
