package rastermask

// ClassifyInterior separates inside from outside. Every unmarked cell that is
// 4-connected-reachable from the grid's outer border (first/last row and
// column) without crossing a boundary mark is confirmed outside; unmarked
// cells never reached are enclosed by boundary marks and become inside. On
// return, 1 means inside-or-boundary and 0 means outside.
//
// The fill is iterative on an explicit worklist, never recursive: grids here
// routinely run to millions of cells and a recursive fill would exhaust the
// stack. Each border seed grows a contiguous group by breadth-first
// 4-neighbor expansion, marking newly discovered unmarked cells with the
// transient outside value as they are queued so no cell enters the queue
// twice.
func (g *Grid) ClassifyInterior() {
	g.requireStage(StageRaster)

	w, h := g.width(), g.height()

	// Seed with every border cell.
	seeds := make([]int, 0, 2*(w+h))
	for x := 0; x < w; x++ {
		seeds = append(seeds, x*h, x*h+h-1)
	}
	for y := 1; y < h-1; y++ {
		seeds = append(seeds, y, (w-1)*h+y)
	}

	group := make([]int, 0, w+h)
	for _, seed := range seeds {
		if g.cells[seed] != cellClear {
			continue
		}

		g.cells[seed] = cellOutside
		group = append(group[:0], seed)

		for n := 0; n < len(group); n++ {
			c := group[n]
			x, y := c/h, c%h

			if y > 0 && g.cells[c-1] == cellClear {
				g.cells[c-1] = cellOutside
				group = append(group, c-1)
			}
			if y < h-1 && g.cells[c+1] == cellClear {
				g.cells[c+1] = cellOutside
				group = append(group, c+1)
			}
			if x > 0 && g.cells[c-h] == cellClear {
				g.cells[c-h] = cellOutside
				group = append(group, c-h)
			}
			if x < w-1 && g.cells[c+h] == cellClear {
				g.cells[c+h] = cellOutside
				group = append(group, c+h)
			}
		}
	}

	// Enclosed cells were never reached: reclassify them as inside, then
	// reset the transient outside marker.
	g.changeValInteriorRows(cellClear, cellInside)
	g.changeVal(cellOutside, cellClear)

	g.stage = StageClassified
}
