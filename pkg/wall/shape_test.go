package wall

import (
	"encoding/json"
	"math"
	"testing"
)

func perimeter(pts []Point) float64 {
	var sum float64
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		sum += math.Hypot(b.X-a.X, b.Y-a.Y)
	}
	return sum
}

func TestOutline(t *testing.T) {
	tests := []struct {
		name      string
		shape     Shape
		vertices  int
		perimeter float64
	}{
		{"square", SquareShape(), 4, 0.4},
		{"circle", CircleShape(), CircleSegments, 32 * 0.1 * math.Sin(math.Pi/32)},
		{"hexagon", PolygonShape(6), 6, 0.3},
		{"triangle", PolygonShape(3), 3, 3 * 0.1 * math.Sin(math.Pi/3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := tt.shape.Outline(0.1, 0)
			if len(pts) != tt.vertices {
				t.Fatalf("vertices = %d, want %d", len(pts), tt.vertices)
			}
			if got := perimeter(pts); math.Abs(got-tt.perimeter) > 1e-12 {
				t.Errorf("perimeter = %v, want %v", got, tt.perimeter)
			}
		})
	}
}

func TestOutlineRotation(t *testing.T) {
	pts := SquareShape().Outline(2, 45)
	// A 2×2 square turned 45° has its corners on the axes at distance √2.
	for _, p := range pts {
		r := math.Hypot(p.X, p.Y)
		if math.Abs(r-math.Sqrt2) > 1e-12 {
			t.Errorf("corner %+v at radius %v, want √2", p, r)
		}
		if math.Abs(p.X) > 1e-12 && math.Abs(p.Y) > 1e-12 {
			t.Errorf("corner %+v not on an axis", p)
		}
	}
}

func TestParseShapeKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ShapeKind
		wantErr bool
	}{
		{"square", Square, false},
		{"Circle", Circle, false},
		{" polygon ", Polygon, false},
		{"0", Square, false},
		{"2", Polygon, false},
		{"3", 0, true},
		{"star", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShapeKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShapeJSON(t *testing.T) {
	data, err := json.Marshal(PolygonShape(8))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"kind":"polygon","sides":8}` {
		t.Errorf("json = %s", data)
	}
	var s Shape
	if err := json.Unmarshal([]byte(`{"kind":"circle"}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.Kind != Circle {
		t.Errorf("kind = %v, want circle", s.Kind)
	}
}

func TestShapeName(t *testing.T) {
	if got := PolygonShape(6).Name(); got != "Polygon" {
		t.Errorf("Name() = %q", got)
	}
	if got := PolygonShape(6).String(); got != "polygon(6)" {
		t.Errorf("String() = %q", got)
	}
}
