package boundary

import (
	"bytes"
	"strings"
	"testing"
)

func TestKMLRoundTrip(t *testing.T) {
	p := &Polygon{
		Name: "boston",
		Segments: [][]Vertex{
			{{512345, -300001}, {612345, -300001}, {612345, -200001}, {512345, -200001}},
			{{700000, 100000}, {700010, 100000}, {700010, 100010}},
		},
	}

	var buf bytes.Buffer
	if err := WriteKML(&buf, p.Name, []*Polygon{p}, 1e-5); err != nil {
		t.Fatal(err)
	}

	got, err := ReadKML(&buf, 1e-5)
	if err != nil {
		t.Fatal(err)
	}

	// One polygon comes back per outer boundary.
	if len(got) != 2 {
		t.Fatalf("got %d polygons, expected 2", len(got))
	}

	for si, g := range got {
		if g.Name != "boston" {
			t.Errorf("polygon %d: name %q, expected boston", si, g.Name)
		}

		want := p.Segments[si]
		seg := g.Segments[0]
		if len(seg) != len(want) {
			t.Fatalf("segment %d: got %d vertices, expected %d: %v", si, len(seg), len(want), seg)
		}
		for i, v := range seg {
			if v != want[i] {
				t.Errorf("segment %d vertex %d: got %v, expected %v", si, i, v, want[i])
			}
		}
	}
}

func TestWriteKMLClosesRings(t *testing.T) {
	p := &Polygon{Segments: [][]Vertex{{{5, -3}, {9, -3}, {9, 1}}}}

	var buf bytes.Buffer
	if err := WriteKML(&buf, "x", []*Polygon{p}, 0.25); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "1.25,-0.75 2.25,-0.75 2.25,0.25 1.25,-0.75") {
		t.Fatalf("coordinates not written closed at fixed resolution:\n%s", out)
	}
	if !strings.Contains(out, "<?xml") || !strings.Contains(out, "<kml>") {
		t.Fatalf("missing document framing:\n%s", out)
	}
}

func TestReadKMLToleratesOpenRings(t *testing.T) {
	const doc = `<kml><Document><Placemark><name>x</name><MultiGeometry>
<Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 10,0 10,10 0,10 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon>
<Polygon><outerBoundaryIs><LinearRing><coordinates>0,0,250 10,0,250 10,10,250</coordinates></LinearRing></outerBoundaryIs></Polygon>
</MultiGeometry></Placemark></Document></kml>`

	got, err := ReadKML(strings.NewReader(doc), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d polygons, expected 2", len(got))
	}

	// Closed ring: the duplicated closing vertex is dropped.
	if n := len(got[0].Segments[0]); n != 4 {
		t.Errorf("closed ring: got %d vertices, expected 4: %v", n, got[0].Segments[0])
	}
	// Open ring with altitude components: kept as-is, altitude ignored.
	if n := len(got[1].Segments[0]); n != 3 {
		t.Errorf("open ring: got %d vertices, expected 3: %v", n, got[1].Segments[0])
	}
}

func TestKMLRejectsBadInput(t *testing.T) {
	if _, err := ReadKML(strings.NewReader("<kml>"), 1); err == nil {
		t.Error("expected an error for truncated XML")
	}

	const bad = `<kml><Document><Placemark><MultiGeometry><Polygon><outerBoundaryIs><LinearRing><coordinates>nope</coordinates></LinearRing></outerBoundaryIs></Polygon></MultiGeometry></Placemark></Document></kml>`
	if _, err := ReadKML(strings.NewReader(bad), 1); err == nil {
		t.Error("expected an error for a malformed coordinate tuple")
	}

	if err := WriteKML(&bytes.Buffer{}, "x", nil, 0); err == nil {
		t.Error("expected an error for zero resolution")
	}
	if _, err := ReadKML(strings.NewReader(""), -1); err == nil {
		t.Error("expected an error for negative resolution")
	}
}
