package rastermask

// Expand grows the inside region outward by count grid cells, one 4-neighbor
// ring per round, to add safety margin before tracing. It is a layered BFS:
// the first pass collects every unmarked 4-neighbor of the current inside
// region, each round promotes the queued ring to inside and collects the next
// ring from the newly promoted cells.
//
// Queued-but-not-yet-promoted cells hold the sentinel cellQueued (-1), which
// is distinguishable from outside (0), inside (1), and from every flood-fill
// and tracing marker used elsewhere in the pipeline, so a cell can never be
// queued twice. The grid's safety margin must cover the expansion radius;
// growing past the bounds panics.
func (g *Grid) Expand(count int) {
	g.requireStage(StageClassified)

	if count <= 0 {
		return
	}

	w, h := g.width(), g.height()

	collect := func(from []int, ring []int) []int {
		for _, c := range from {
			x, y := c/h, c%h

			if y > 0 && g.cells[c-1] != cellInside && g.cells[c-1] != cellQueued {
				g.cells[c-1] = cellQueued
				ring = append(ring, c-1)
			}
			if y < h-1 && g.cells[c+1] != cellInside && g.cells[c+1] != cellQueued {
				g.cells[c+1] = cellQueued
				ring = append(ring, c+1)
			}
			if x > 0 && g.cells[c-h] != cellInside && g.cells[c-h] != cellQueued {
				g.cells[c-h] = cellQueued
				ring = append(ring, c-h)
			}
			if x < w-1 && g.cells[c+h] != cellInside && g.cells[c+h] != cellQueued {
				g.cells[c+h] = cellQueued
				ring = append(ring, c+h)
			}
		}

		return ring
	}

	// First ring: neighbors of every currently inside cell.
	var ring []int
	inside := make([]int, 0, 1024)
	for i, c := range g.cells {
		if c == cellInside {
			inside = append(inside, i)
		}
	}
	ring = collect(inside, nil)

	for r := 0; r < count; r++ {
		promoted := ring
		for _, c := range promoted {
			g.cells[c] = cellInside
		}

		if r+1 < count {
			ring = collect(promoted, nil)
		}
	}
}
