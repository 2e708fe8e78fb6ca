package rastermask

import (
	"fmt"

	"github.com/carbocation/pfx"
	"github.com/tj/go-rle"
)

// EncodeRLE snapshots the cell raster with run-length encoding, lon-major.
// Masks are dominated by long runs of identical values at every pipeline
// stage, so this is a compact way to cache or dump a grid for diagnostics.
func (g *Grid) EncodeRLE() []byte {
	vals := make([]int64, len(g.cells))
	for i, c := range g.cells {
		vals[i] = int64(c)
	}

	return rle.EncodeInt64(vals)
}

// DecodeRLE restores a snapshot produced by EncodeRLE into this grid. The
// grid's bounds must match the snapshot's cell count; the pipeline stage is
// not part of the snapshot and is left unchanged.
func (g *Grid) DecodeRLE(data []byte) error {
	vals, err := rle.DecodeInt64(data)
	if err != nil {
		return pfx.Err(err)
	}

	if len(vals) != len(g.cells) {
		return fmt.Errorf("rastermask: snapshot holds %d cells, grid has %d", len(vals), len(g.cells))
	}

	for i, v := range vals {
		g.cells[i] = int32(v)
	}

	return nil
}
