package rastermask

import (
	"sort"

	"github.com/theodesp/unionfind"
)

// Two-pass connected-component labeling over the inside cells, following the
// classic scheme: assign provisional labels from already-seen west/south
// neighbors, record label equivalences in a union-find, then reconcile every
// cell to its canonical root label. 4-connected, which matches the flood-fill
// classifier; the tracer's Moore walk additionally merges diagonal-touching
// components, so these counts can exceed the traced polygon count on
// pathological masks.
func (g *Grid) labelComponents() ([]int32, map[int32]int) {
	g.requireStage(StageClassified)

	w, h := g.width(), g.height()
	labels := make([]int32, len(g.cells))
	uf := unionfind.NewThreadSafeUnionFind(len(g.cells) + 2)

	var next int32 = 1
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			c := x*h + y
			if g.cells[c] != cellInside {
				continue
			}

			var south, west int32
			if y > 0 && g.cells[c-1] == cellInside {
				south = labels[c-1]
			}
			if x > 0 && g.cells[c-h] == cellInside {
				west = labels[c-h]
			}

			switch {
			case south != 0 && west != 0:
				// Two labeled neighbors: keep the lower label and join the two.
				if west < south {
					labels[c] = west
					uf.Union(int(west), int(south))
				} else {
					labels[c] = south
					uf.Union(int(south), int(west))
				}
			case south != 0:
				labels[c] = south
			case west != 0:
				labels[c] = west
			default:
				labels[c] = next
				next++
			}
		}
	}

	// Reconcile provisional labels to canonical roots and tally sizes.
	sizes := make(map[int32]int)
	for c, v := range labels {
		if v == 0 {
			continue
		}

		if root := uf.Root(int(v)); root >= 0 && int32(root) != v {
			v = int32(root)
			labels[c] = v
		}

		sizes[v]++
	}

	return labels, sizes
}

// ComponentSizes returns the cell counts of all 4-connected inside
// components, largest first.
func (g *Grid) ComponentSizes() []int {
	_, sizes := g.labelComponents()

	out := make([]int, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, s)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))

	return out
}

// SieveComponents clears every inside component holding fewer than minCells
// cells and returns the number of components removed. Used to drop speckle
// components (common in real-world footprint data) before tracing.
func (g *Grid) SieveComponents(minCells int) int {
	if minCells <= 1 {
		return 0
	}

	labels, sizes := g.labelComponents()

	removed := 0
	for _, s := range sizes {
		if s < minCells {
			removed++
		}
	}
	if removed == 0 {
		return 0
	}

	for c, v := range labels {
		if v != 0 && sizes[v] < minCells {
			g.cells[c] = cellClear
		}
	}

	return removed
}
