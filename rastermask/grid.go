// Package rastermask implements the discretized-plane half of boundary
// extraction: a sampling grid over an integer lattice, segment rasterization,
// inside/outside classification by border flood fill, morphological region
// expansion, and contour tracing of the classified regions into polygons.
//
// The grid's small-integer cell values are reused across pipeline stages with
// different meanings (0 unmarked/outside, 1 boundary-or-inside, 2 transient
// outside marker, >=2 per-polygon visited markers). To keep that reuse from
// becoming a bug source, every Grid carries an explicit stage marker and each
// operation checks it: rasterization only while raw, classification exactly
// once, expansion and tracing only after classification.
package rastermask

import (
	"errors"
	"fmt"
	"math"
)

// ErrInconsistentMask indicates a grid state that violates an invariant of
// the extraction pipeline (for example a tracer start cell with an inside
// neighbor to its west or south). It means an earlier stage produced a
// malformed mask; the job must be aborted rather than emit a corrupt polygon.
var ErrInconsistentMask = errors.New("rastermask: inconsistent mask state")

// ErrDegenerateRing marks an input-shape anomaly (a ring with fewer than 3
// vertices, or zero area). Callers should log and skip the offending ring
// rather than abort the whole job.
var ErrDegenerateRing = errors.New("rastermask: degenerate ring")

// Stage tracks which pipeline phase the grid's cell values belong to.
type Stage uint8

const (
	// StageRaster: cells are 0 (unmarked) or 1 (boundary mark).
	StageRaster Stage = iota
	// StageClassified: cells are 0 (outside) or 1 (inside or boundary).
	StageClassified
	// StageTraced: inside cells carry per-polygon visited markers >= 2.
	StageTraced
)

func (s Stage) String() string {
	switch s {
	case StageRaster:
		return "raster"
	case StageClassified:
		return "classified"
	case StageTraced:
		return "traced"
	}

	return fmt.Sprintf("stage(%d)", uint8(s))
}

// Cell values. firstVisitedMark and up are handed out one per traced
// component; cellQueued is the dilation sentinel, chosen negative so it can
// never collide with a visited marker.
const (
	cellClear   int32 = 0
	cellInside  int32 = 1
	cellOutside int32 = 2

	cellQueued       int32 = -1
	firstVisitedMark int32 = 2
)

// Grid is the sampling lattice for one extraction job. Index bounds are
// inclusive; a continuous coordinate maps to an index via
// floor(coordinate * samplesPerDegree). A Grid is owned exclusively by the
// job that created it and is not safe for concurrent use.
type Grid struct {
	lonMin, lonMax   int
	latMin, latMax   int
	samplesPerDegree float64

	// cells is lon-major: offset = (lon-lonMin)*height + (lat-latMin).
	cells []int32
	stage Stage
}

// NewGrid creates a grid with the given inclusive index bounds. Bounds must
// be wide enough to contain, with margin, every rasterized segment and every
// dilation radius used; out-of-bounds access later is a programming error
// and panics.
func NewGrid(lonMin, lonMax, latMin, latMax int, samplesPerDegree float64) *Grid {
	if lonMax < lonMin || latMax < latMin {
		panic(fmt.Sprintf("rastermask: inverted grid bounds lon [%d,%d] lat [%d,%d]", lonMin, lonMax, latMin, latMax))
	}
	if samplesPerDegree <= 0 {
		panic(fmt.Sprintf("rastermask: samplesPerDegree must be positive, got %g", samplesPerDegree))
	}

	w := lonMax - lonMin + 1
	h := latMax - latMin + 1

	return &Grid{
		lonMin:           lonMin,
		lonMax:           lonMax,
		latMin:           latMin,
		latMax:           latMax,
		samplesPerDegree: samplesPerDegree,
		cells:            make([]int32, w*h),
	}
}

// NewGridForExtent creates a grid covering the given continuous-coordinate
// extent plus margin cells on each side. The margin must be at least
// expansion+4 for the dilation radius the job will use.
func NewGridForExtent(minLon, maxLon, minLat, maxLat, samplesPerDegree float64, margin int) *Grid {
	return NewGrid(
		int(math.Floor(minLon*samplesPerDegree))-margin,
		int(math.Floor(maxLon*samplesPerDegree))+margin,
		int(math.Floor(minLat*samplesPerDegree))-margin,
		int(math.Floor(maxLat*samplesPerDegree))+margin,
		samplesPerDegree,
	)
}

// Bounds returns the inclusive index bounds.
func (g *Grid) Bounds() (lonMin, lonMax, latMin, latMax int) {
	return g.lonMin, g.lonMax, g.latMin, g.latMax
}

// SamplesPerDegree returns the continuous-to-index scale factor.
func (g *Grid) SamplesPerDegree() float64 { return g.samplesPerDegree }

// Stage returns the pipeline stage the grid is currently in.
func (g *Grid) Stage() Stage { return g.stage }

func (g *Grid) width() int  { return g.lonMax - g.lonMin + 1 }
func (g *Grid) height() int { return g.latMax - g.latMin + 1 }

// LonIndex maps a longitude-axis coordinate to its grid index.
func (g *Grid) LonIndex(deg float64) int {
	return int(math.Floor(deg * g.samplesPerDegree))
}

// LatIndex maps a latitude-axis coordinate to its grid index.
func (g *Grid) LatIndex(deg float64) int {
	return int(math.Floor(deg * g.samplesPerDegree))
}

// offset converts absolute grid indices to a cell offset, panicking on
// out-of-bounds access: bounds too tight for the input geometry are a caller
// bug, not a recoverable condition.
func (g *Grid) offset(lon, lat int) int {
	if lon < g.lonMin || lon > g.lonMax || lat < g.latMin || lat > g.latMax {
		panic(fmt.Sprintf("rastermask: index (%d,%d) outside grid bounds lon [%d,%d] lat [%d,%d]",
			lon, lat, g.lonMin, g.lonMax, g.latMin, g.latMax))
	}

	return (lon-g.lonMin)*g.height() + (lat - g.latMin)
}

// Val returns the cell value at the given absolute grid indices.
func (g *Grid) Val(lon, lat int) int32 {
	return g.cells[g.offset(lon, lat)]
}

// SetVal stores a cell value at the given absolute grid indices.
func (g *Grid) SetVal(lon, lat int, v int32) {
	g.cells[g.offset(lon, lat)] = v
}

// CountVal returns how many cells currently hold the given value.
func (g *Grid) CountVal(v int32) int {
	n := 0
	for _, c := range g.cells {
		if c == v {
			n++
		}
	}

	return n
}

// changeVal rewrites every cell holding from to to.
func (g *Grid) changeVal(from, to int32) {
	for i, c := range g.cells {
		if c == from {
			g.cells[i] = to
		}
	}
}

// changeValInteriorRows rewrites from to to on all rows except the first and
// last latitude rows, which are reserved as grid border.
func (g *Grid) changeValInteriorRows(from, to int32) {
	w, h := g.width(), g.height()
	for x := 0; x < w; x++ {
		base := x * h
		for y := 1; y < h-1; y++ {
			if g.cells[base+y] == from {
				g.cells[base+y] = to
			}
		}
	}
}

func (g *Grid) requireStage(s Stage) {
	if g.stage != s {
		panic(fmt.Sprintf("rastermask: operation requires %v grid, have %v", s, g.stage))
	}
}
