package boundary

import "testing"

func TestContainsSquare(t *testing.T) {
	p := square()

	for _, v := range []struct {
		pt       Vertex
		expected Position
	}{
		{Vertex{5, 5}, Inside},
		{Vertex{1, 9}, Inside},
		{Vertex{15, 5}, Outside},
		{Vertex{-1, 5}, Outside},
		{Vertex{5, 15}, Outside},
		{Vertex{5, -1}, Outside},

		// Exactly on edges and vertices.
		{Vertex{0, 5}, OnEdge},
		{Vertex{10, 5}, OnEdge},
		{Vertex{5, 0}, OnEdge},
		{Vertex{5, 10}, OnEdge},
		{Vertex{0, 0}, OnEdge},
		{Vertex{10, 10}, OnEdge},

		// Collinear with an edge but past its endpoints.
		{Vertex{0, 15}, Outside},
		{Vertex{15, 0}, Outside},

		// Ray passes exactly through boundary vertices.
		{Vertex{-5, 10}, Outside},
		{Vertex{-5, 0}, Outside},
	} {
		pos, err := p.Contains(v.pt)
		if err != nil {
			t.Fatalf("point %v: unexpected error: %v", v.pt, err)
		}
		if pos != v.expected {
			t.Errorf("point %v: got %v, expected %v", v.pt, pos, v.expected)
		}
	}
}

func TestContainsRayThroughVertex(t *testing.T) {
	// A diamond puts a vertex exactly on the test ray; the half-open crossing
	// rule must count the two adjoining edges as a single crossing.
	p := &Polygon{Segments: [][]Vertex{
		{{0, 2}, {2, 0}, {4, 2}, {2, 4}},
	}}

	pos, err := p.Contains(Vertex{2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if pos != Inside {
		t.Fatalf("diamond center: got %v, expected inside", pos)
	}

	pos, err = p.Contains(Vertex{-2, 2})
	if err != nil {
		t.Fatal(err)
	}
	if pos != Outside {
		t.Fatalf("left of diamond: got %v, expected outside", pos)
	}
}

func TestContainsConcave(t *testing.T) {
	// U shape: the notch between the arms is outside even though it sits
	// within the bounding box.
	p := &Polygon{Segments: [][]Vertex{
		{{0, 0}, {30, 0}, {30, 20}, {20, 20}, {20, 5}, {10, 5}, {10, 20}, {0, 20}},
	}}

	for _, v := range []struct {
		pt       Vertex
		expected Position
	}{
		{Vertex{5, 15}, Inside},
		{Vertex{25, 15}, Inside},
		{Vertex{15, 2}, Inside},
		{Vertex{15, 15}, Outside},
		{Vertex{15, 5}, OnEdge},
	} {
		pos, err := p.Contains(v.pt)
		if err != nil {
			t.Fatalf("point %v: unexpected error: %v", v.pt, err)
		}
		if pos != v.expected {
			t.Errorf("point %v: got %v, expected %v", v.pt, pos, v.expected)
		}
	}
}

func TestContainsMultiSegment(t *testing.T) {
	p := square()
	far := square()
	far.Translate(100, 100)
	p.Segments = append(p.Segments, far.Segments[0])

	for _, v := range []struct {
		pt       Vertex
		expected Position
	}{
		{Vertex{5, 5}, Inside},
		{Vertex{105, 105}, Inside},
		{Vertex{50, 50}, Outside},
	} {
		pos, err := p.Contains(v.pt)
		if err != nil {
			t.Fatalf("point %v: unexpected error: %v", v.pt, err)
		}
		if pos != v.expected {
			t.Errorf("point %v: got %v, expected %v", v.pt, pos, v.expected)
		}
	}
}

func TestPositionString(t *testing.T) {
	if Inside.String() != "inside" || Outside.String() != "outside" || OnEdge.String() != "on-edge" {
		t.Fatalf("unexpected Position strings: %v %v %v", Inside, Outside, OnEdge)
	}
}
