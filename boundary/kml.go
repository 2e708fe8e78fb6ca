package boundary

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
)

// The boundary document is a minimal KML-style geometry: a single Placemark
// whose MultiGeometry holds one Polygon outer boundary per ring. Coordinates
// are plane-degree values derived from grid indices at a caller-specified
// resolution (coordinate = gridIndex * resolution). Serializing at a fixed
// decimal resolution is an accepted lossy step, not an error.

type kmlRoot struct {
	XMLName  xml.Name `xml:"kml"`
	Document kmlDoc   `xml:"Document"`
}

type kmlDoc struct {
	Placemark kmlPlacemark `xml:"Placemark"`
}

type kmlPlacemark struct {
	Name          string      `xml:"name,omitempty"`
	MultiGeometry kmlMultiGeo `xml:"MultiGeometry"`
}

type kmlMultiGeo struct {
	Polygons []kmlPolygon `xml:"Polygon"`
}

type kmlPolygon struct {
	OuterBoundaryIs kmlOuterBoundary `xml:"outerBoundaryIs"`
}

type kmlOuterBoundary struct {
	LinearRing kmlLinearRing `xml:"LinearRing"`
}

type kmlLinearRing struct {
	Coordinates string `xml:"coordinates"`
}

// WriteKML serializes the polygon list as one multi-geometry placemark. Every
// segment of every polygon becomes one outer boundary; rings are written
// closed (first vertex repeated) as KML consumers expect, even though the
// internal representation never stores the closing vertex.
func WriteKML(w io.Writer, name string, polys []*Polygon, resolution float64) error {
	if resolution <= 0 {
		return fmt.Errorf("boundary: resolution must be positive, got %g", resolution)
	}

	root := kmlRoot{}
	root.Document.Placemark.Name = name

	for _, p := range polys {
		for _, seg := range p.Segments {
			var sb strings.Builder
			for i := 0; i <= len(seg); i++ {
				v := seg[i%len(seg)]
				if i > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(strconv.FormatFloat(float64(v.X)*resolution, 'f', -1, 64))
				sb.WriteByte(',')
				sb.WriteString(strconv.FormatFloat(float64(v.Y)*resolution, 'f', -1, 64))
			}

			kp := kmlPolygon{}
			kp.OuterBoundaryIs.LinearRing.Coordinates = sb.String()
			root.Document.Placemark.MultiGeometry.Polygons = append(root.Document.Placemark.MultiGeometry.Polygons, kp)
		}
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return pfx.Err(err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(root); err != nil {
		return pfx.Err(err)
	}
	if err := enc.Flush(); err != nil {
		return pfx.Err(err)
	}

	return nil
}

// ReadKML parses a boundary document written by WriteKML (or a compatible
// tool), returning one polygon per outer boundary. Coordinates are converted
// back to grid indices by rounding at the given resolution. A duplicated
// closing vertex (first == last) is tolerated and discarded.
func ReadKML(r io.Reader, resolution float64) ([]*Polygon, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("boundary: resolution must be positive, got %g", resolution)
	}

	root := kmlRoot{}
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, pfx.Err(err)
	}

	name := root.Document.Placemark.Name
	out := make([]*Polygon, 0, len(root.Document.Placemark.MultiGeometry.Polygons))

	for i, kp := range root.Document.Placemark.MultiGeometry.Polygons {
		seg, err := parseCoordinates(kp.OuterBoundaryIs.LinearRing.Coordinates, resolution)
		if err != nil {
			return nil, fmt.Errorf("polygon %d: %w", i, err)
		}

		out = append(out, &Polygon{Name: name, Segments: [][]Vertex{seg}})
	}

	return out, nil
}

func parseCoordinates(raw string, resolution float64) ([]Vertex, error) {
	fields := strings.Fields(raw)
	seg := make([]Vertex, 0, len(fields))

	for _, f := range fields {
		parts := strings.Split(f, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("boundary: malformed coordinate tuple %q", f)
		}

		// A third altitude component, if present, is ignored.
		x, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, pfx.Err(err)
		}
		y, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, pfx.Err(err)
		}

		seg = append(seg, Vertex{
			X: int(math.Round(x / resolution)),
			Y: int(math.Round(y / resolution)),
		})
	}

	if len(seg) >= 2 && seg[0] == seg[len(seg)-1] {
		seg = seg[:len(seg)-1]
	}

	return seg, nil
}
