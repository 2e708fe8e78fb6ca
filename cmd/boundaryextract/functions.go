package main

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/geospect/boundex/boundary"
)

// ringRow is one CSV record: a single ring vertex. Rows sharing a ring ID
// form one ring, in file order.
type ringRow struct {
	Ring int     `csv:"ring"`
	X    float64 `csv:"x"`
	Y    float64 `csv:"y"`
}

func readRingCSV(path string) ([][]boundary.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows := []*ringRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	// Group by ring ID, preserving first-seen order.
	order := []int{}
	byID := map[int][]boundary.Point{}
	for _, r := range rows {
		if _, seen := byID[r.Ring]; !seen {
			order = append(order, r.Ring)
		}
		byID[r.Ring] = append(byID[r.Ring], boundary.Point{X: r.X, Y: r.Y})
	}

	rings := make([][]boundary.Point, 0, len(order))
	for _, id := range order {
		rings = append(rings, byID[id])
	}

	return rings, nil
}
